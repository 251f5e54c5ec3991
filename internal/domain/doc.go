// Package domain defines the core entities and interfaces for jellygram.
//
// This package contains the webhook event model, the enrichment record
// returned by the media server, the notification decision result, and the
// interfaces implemented by external collaborators (media server, trailer
// search, chat dispatch). All interfaces accept context for cancellation
// and timeout support.
package domain
