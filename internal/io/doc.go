// Package ioutils provides file system utilities for the track library.
//
// # Track Files
//
// Track files hold one record per line with three tab-separated fields:
// title, artist and duration in seconds.
//
//	Come Together	The Beatles	259
//	Bohemian Rhapsody	Queen	354
//
// Load and save them with:
//
//	tracks, warnings, err := ioutils.LoadTracks(ctx, "library.txt")
//	for _, w := range warnings {
//	    // w.Line, w.Title, w.Artist identify the skipped record
//	}
//
//	err = ioutils.SaveTracks(ctx, "backup.txt", tracks)
//
// # Export Names
//
// ExportFileName builds timestamped names for saves:
//
//	name := ioutils.ExportFileName("tracks_{timestamp}.txt", time.Now())
//	// "tracks_2023-04-16_14-05-09.txt"
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
package ioutils
