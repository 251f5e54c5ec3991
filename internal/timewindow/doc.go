// Package timewindow answers whether an ISO-8601 timestamp falls within the
// last N days of now.
//
// The two predicates partition all timestamps exhaustively: WithinLastDays
// is a strict less-than on the elapsed time, NotWithinLastDays is the
// complementary greater-or-equal, so an elapsed time of exactly N days is
// "not within".
package timewindow
