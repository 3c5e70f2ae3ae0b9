// Package config provides configuration management for the track library.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Environment overrides, optionally from .env files
//   - Default configuration values
//   - Conversion to logger and playlist settings for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Saves to ./tracks_{timestamp}.txt after a y/n confirmation
//	// Playlists default to extended M3U
//	// Warnings and errors only, no log file
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/tracklib.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
//	err := settings.ApplyEnv() // reads ./.env, then the process environment
//
// Recognized variables: TRACKLIB_EXPORT_DIR, TRACKLIB_EXPORT_FORMAT,
// TRACKLIB_PLAYLIST_FORMAT, TRACKLIB_LOG_LEVEL, TRACKLIB_LOG_FILE and
// TRACKLIB_SCAN_CONCURRENCY.
//
// # Saving Settings
//
//	settings.ExportDirectory = "/backups/tracks"
//	err := settings.Save("/path/to/tracklib.json")
package config
