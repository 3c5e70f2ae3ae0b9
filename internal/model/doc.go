// Package model defines the core data structures used throughout
// the track library.
//
// # Track
//
// Track is one catalog record: a title, an artist, a duration in seconds and
// the line it was read from:
//
//	track := model.NewTrack(1, "Song Title", "Artist", 180)
//	fmt.Println(track.Line) // provenance, not a key
//
// Tracks found by the audio scanner also carry the Path of their file.
//
// # Playlist Formats
//
// PlaylistFormat names the playlist renderings the library can export:
//
//	pf, ok := model.ParsePlaylistFormat("pls")
//	fmt.Println(pf.Extension()) // ".pls"
package model
