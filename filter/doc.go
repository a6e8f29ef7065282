// Package filter compiles display filter expressions over movie summaries using
// the expr language.
//
// Filters only narrow what is shown; they never change what a browse session
// has accumulated. Available variables are ID, Title, Year, Rating, Age,
// HasYear, HasRating, HasPoster and CurrentYear. The case-insensitive helpers
// hasText, hasPrefix and hasSuffix sit next to lower and upper; the built-in
// contains, startsWith and endsWith operators stay case-sensitive:
//
//	Rating >= 8.5 && Year >= 2000
//	HasPoster && !hasText(Title, "christmas")
//	Title startsWith "The"
package filter
