// Package timetable reads and writes flight timetables as CSV.
//
// The header names the columns; order is free and matching ignores case and
// surrounding blanks:
//
//	flight,from,dep,to,arr,seats
//	LAX7-JFK15,LAX,7,JFK,15,375
//
// "flight" is an optional label, the other five columns are required.
// Station codes are upper-cased. Lines starting with '#' are comments.
// Range checks (hours inside the horizon, positive seats, known stations)
// belong to network.Build; this package only rejects rows that cannot be
// parsed at all, with a *ParseError naming the line and column.
package timetable
