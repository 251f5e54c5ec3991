package service

import (
	"fmt"
	"strings"
)

// permalink builds the deep link into the media server's web UI.
func permalink(baseURL, itemID string) string {
	return fmt.Sprintf("%s/web/index.html#!/details?id=%s", baseURL, itemID)
}

func renderMovieCaption(name string, year int, overview, runtime, trailerURL, link string) string {
	var b strings.Builder
	b.WriteString("*🍿New Movie Added🍿*\n\n")
	fmt.Fprintf(&b, "*%s* *(%d)*\n\n", name, year)
	if overview != "" {
		b.WriteString(overview + "\n\n")
	}
	if runtime != "" {
		fmt.Fprintf(&b, "Runtime: %s\n\n", runtime)
	}
	if trailerURL != "" {
		fmt.Fprintf(&b, "[🎞 Trailer](%s)\n", trailerURL)
	}
	fmt.Fprintf(&b, "[▶ Watch Now](%s)", link)
	return b.String()
}

func renderSeasonCaption(seriesName, seasonName string, year int, overview, link string) string {
	var b strings.Builder
	b.WriteString("*📺New Season Added📺*\n\n")
	fmt.Fprintf(&b, "*%s* - *%s* *(%d)*\n\n", seriesName, seasonName, year)
	if overview != "" {
		b.WriteString(overview + "\n\n")
	}
	fmt.Fprintf(&b, "[▶ Watch Now](%s)", link)
	return b.String()
}

func renderEpisodeCaption(seriesName, seasonNumber, episodeNumber, name, overview, link string) string {
	var b strings.Builder
	b.WriteString("*📺New Episode Added📺*\n\n")
	fmt.Fprintf(&b, "*%s* - S%sE%s - *%s*\n\n", seriesName, seasonNumber, episodeNumber, name)
	if overview != "" {
		b.WriteString(overview + "\n\n")
	}
	fmt.Fprintf(&b, "[▶ Watch Now](%s)", link)
	return b.String()
}
