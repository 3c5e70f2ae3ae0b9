package model

import "fmt"

// Track represents a single catalog record.
//
// Track contains:
//   - Line, the 1-based position of the record in the source it was read from
//   - Title and Artist, compared case-insensitively by the catalog
//   - Duration in seconds (no range is enforced; negative values are kept as-is)
//   - Path of the audio file the record was scanned from, if any
//
// Line is provenance only. Two tracks with the same Line from different files
// are unrelated, and the catalog never uses Line as a key.
//
// Track is a plain value. The catalog stores copies and returns copies, so a
// Track obtained from a search can be changed without affecting the catalog.
//
// Example:
//
//	track := NewTrack(3, "Come Together", "The Beatles", 259)
//	fmt.Println(track) // "Come Together" by The Beatles (259s, line 3)
type Track struct {
	// Line is the 1-based source line (or scan ordinal) of the record.
	Line int

	// Title is the track title.
	Title string

	// Artist is the artist or band name. It is the catalog key.
	Artist string

	// Duration is the track length in seconds.
	Duration int

	// Path is the audio file the track was read from.
	// Empty for tracks loaded from a delimited text file.
	Path string
}

// NewTrack creates a Track read from a text source.
//
// Parameters:
//   - line: 1-based line number in the source file
//   - title: Track title
//   - artist: Artist name
//   - duration: Track length in seconds
func NewTrack(line int, title, artist string, duration int) Track {
	return Track{
		Line:     line,
		Title:    title,
		Artist:   artist,
		Duration: duration,
	}
}

// String formats the track for warnings and logs.
func (t Track) String() string {
	return fmt.Sprintf("%q by %s (%ds, line %d)", t.Title, t.Artist, t.Duration, t.Line)
}
