// Package audio provides audio file services: tag reading for importing a
// music directory into the catalog, and playlist generation for exporting it.
//
// # Tag Reading
//
// Use the Scanner to read title, artist and duration from audio files:
//
//	scanner := audio.NewScanner(runtime.NumCPU(), []string{".mp3", ".flac"})
//	result, err := scanner.Scan(ctx, "/music")
//	// result.Tracks are ordered by path, result.Failed lists unreadable files
//
// The scanner supports:
//   - MP3 via ID3v2 (TIT2 title, TPE1/TPE2 artist, TLEN duration)
//   - M4A, FLAC, OGG via their native tag formats (title and artist only)
//
// # Playlist Generation
//
// Generate playlists in various formats:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist("My Library", tracks)
//	os.WriteFile("library.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
