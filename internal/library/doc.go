// Package library ties the track catalog to its sources and exports.
//
// # Manager
//
// A Manager owns one catalog and everything that feeds it or reads it:
//
//  1. Load a tab-separated track file and size the catalog to it
//  2. Add further track files or scan a directory of audio files
//  3. Search, remove and list tracks
//  4. Save the catalog back to a track file or render it as a playlist
//
// Recoverable problems (malformed lines, duplicates, unreadable audio files)
// never stop an operation. They are reported as Warning events through the
// progress callback and logged at warn level.
//
// # Basic Usage
//
//	manager, err := library.Open(ctx, "tracks.txt", library.Options{
//	    Settings: settings,
//	    Logger:   log,
//	    OnProgress: func(event library.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//
//	for _, t := range manager.Search("queen") {
//	    fmt.Println(t.Title, t.Duration)
//	}
//
//	path, n, err := manager.Save(ctx, "")
package library
