package library

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/handiism/track-library/internal/audio"
	"github.com/handiism/track-library/internal/catalog"
	"github.com/handiism/track-library/internal/config"
	ioutils "github.com/handiism/track-library/internal/io"
	"github.com/handiism/track-library/internal/logger"
	"github.com/handiism/track-library/internal/model"
)

// ErrNoTracks is returned when a source yields no valid records.
var ErrNoTracks = errors.New("no valid tracks")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a user-facing status update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Options configures a Manager.
type Options struct {
	// Settings defaults to config.DefaultSettings().
	Settings *config.Settings

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// OnProgress receives every progress event. May be nil.
	OnProgress func(ProgressEvent)

	// Capacity overrides the bucket count chosen by Open.
	// Zero means one bucket per loaded track.
	Capacity int

	// Now defaults to time.Now. Used for generated export names.
	Now func() time.Time
}

// Manager coordinates a catalog with its file sources and exports.
//
// A Manager is driven by a single control flow, like the catalog it owns.
type Manager struct {
	settings *config.Settings
	catalog  *catalog.Catalog
	scanner  *audio.Scanner
	log      *zap.Logger
	now      func() time.Time

	onProgress func(ProgressEvent)
}

// New creates a Manager with an empty catalog of capacity buckets.
func New(capacity int, opts Options) (*Manager, error) {
	cat, err := catalog.New(capacity)
	if err != nil {
		return nil, err
	}

	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Manager{
		settings:   settings,
		catalog:    cat,
		scanner:    audio.NewScanner(settings.ScanConcurrency, settings.ScanExtensions),
		log:        logger.OrNop(opts.Logger),
		now:        now,
		onProgress: opts.OnProgress,
	}, nil
}

// Open loads a track file and builds a catalog sized to it.
//
// The file must exist, be readable, and contain at least one valid record;
// otherwise the error wraps ioutils.ErrSourceUnavailable,
// ioutils.ErrEmptySource or ErrNoTracks and no catalog is built. Malformed
// lines and duplicates are reported as warnings.
func Open(ctx context.Context, path string, opts Options) (*Manager, error) {
	log := logger.OrNop(opts.Logger)

	tracks, warnings, err := ioutils.LoadTracks(ctx, path)
	if err != nil {
		log.Error("load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	if len(tracks) == 0 {
		reportMalformed(opts.OnProgress, log, warnings)
		log.Error("no valid tracks", zap.String("path", path))
		return nil, fmt.Errorf("%w in %s", ErrNoTracks, path)
	}

	capacity := opts.Capacity
	if capacity == 0 {
		capacity = len(tracks)
	}

	m, err := New(capacity, opts)
	if err != nil {
		return nil, err
	}

	m.reportMalformed(warnings)
	added := m.AddTracks(tracks)
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Loaded %d tracks from %s", added, path),
		Level:   LevelInfo,
	}, zap.String("path", path), zap.Int("tracks", added), zap.Int("capacity", capacity))

	return m, nil
}

// Scan builds a catalog from the audio files under dir.
//
// Like Open, the catalog is sized to the number of tracks found unless
// opts.Capacity is set, and a directory without readable audio files fails
// with ErrNoTracks.
func Scan(ctx context.Context, dir string, opts Options) (*Manager, error) {
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	log := logger.OrNop(opts.Logger)

	scanner := audio.NewScanner(settings.ScanConcurrency, settings.ScanExtensions)
	result, err := scanner.Scan(ctx, dir)
	if err != nil {
		log.Error("scan failed", zap.String("dir", dir), zap.Error(err))
		return nil, err
	}
	reportFailed(opts.OnProgress, log, result.Failed)
	if len(result.Tracks) == 0 {
		log.Error("no valid tracks", zap.String("dir", dir))
		return nil, fmt.Errorf("%w in %s", ErrNoTracks, dir)
	}

	capacity := opts.Capacity
	if capacity == 0 {
		capacity = len(result.Tracks)
	}
	m, err := New(capacity, opts)
	if err != nil {
		return nil, err
	}

	added := m.AddTracks(result.Tracks)
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Loaded %d tracks from %s", added, dir),
		Level:   LevelInfo,
	}, zap.String("dir", dir), zap.Int("tracks", added), zap.Int("capacity", capacity))

	return m, nil
}

// Insert adds a track to the catalog.
//
// A duplicate is reported as a warning and returned as a *catalog.DuplicateError.
func (m *Manager) Insert(track model.Track) error {
	err := m.catalog.Insert(track)

	var dup *catalog.DuplicateError
	if errors.As(err, &dup) {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Duplicate track found on line %d: track %q by artist %q. Skipping track.",
				dup.Existing.Line, track.Title, track.Artist),
			Level: LevelWarning,
		}, zap.Int("existing_line", dup.Existing.Line), zap.Int("line", track.Line),
			zap.String("title", track.Title), zap.String("artist", track.Artist))
	}
	return err
}

// AddTracks inserts tracks in order and returns how many were stored.
func (m *Manager) AddTracks(tracks []model.Track) int {
	added := 0
	for _, t := range tracks {
		if m.Insert(t) == nil {
			added++
		}
	}
	return added
}

// AddFromFile loads a track file into the existing catalog.
func (m *Manager) AddFromFile(ctx context.Context, path string) (int, error) {
	tracks, warnings, err := ioutils.LoadTracks(ctx, path)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error loading %s: %v", path, err), Level: LevelError})
		return 0, err
	}

	m.reportMalformed(warnings)
	if len(tracks) == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("No valid tracks in %s", path), Level: LevelWarning})
		return 0, fmt.Errorf("%w in %s", ErrNoTracks, path)
	}

	added := m.AddTracks(tracks)
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Successfully added %d tracks from %s", added, path),
		Level:   LevelSuccess,
	}, zap.String("path", path), zap.Int("tracks", added))
	return added, nil
}

// ExportPath returns the generated path Save uses when given no path.
func (m *Manager) ExportPath() string {
	name := ioutils.ExportFileName(m.settings.ExportFileNameFormat, m.now())
	return filepath.Join(m.settings.ExportDirectory, name)
}

// Save writes every track to path in catalog order. An empty path uses
// ExportPath. It returns the path written and the number of tracks.
func (m *Manager) Save(ctx context.Context, path string) (string, int, error) {
	if path == "" {
		path = m.ExportPath()
	}

	tracks := m.catalog.All()
	if err := ioutils.SaveTracks(ctx, path, tracks); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving to %s: %v", path, err), Level: LevelError})
		return path, 0, err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Successfully saved %d tracks to %s", len(tracks), path),
		Level:   LevelSuccess,
	}, zap.String("path", path), zap.Int("tracks", len(tracks)))
	return path, len(tracks), nil
}

// Search returns the tracks of artist in insertion order.
func (m *Manager) Search(artist string) []model.Track {
	found := m.catalog.Search(artist)
	m.log.Debug("search", zap.String("artist", artist), zap.Int("found", len(found)))
	return found
}

// Remove deletes the track matching title and artist, ignoring case.
func (m *Manager) Remove(title, artist string) bool {
	removed := m.catalog.Remove(title, artist)
	if removed {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Track %q by %s has been successfully removed.", title, artist),
			Level:   LevelSuccess,
		}, zap.String("title", title), zap.String("artist", artist))
	} else {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Track %q by %s could not be found and therefore not removed.", title, artist),
			Level:   LevelInfo,
		}, zap.String("title", title), zap.String("artist", artist))
	}
	return removed
}

// Tracks returns every track in catalog order.
func (m *Manager) Tracks() []model.Track {
	return m.catalog.All()
}

// Len returns the number of stored tracks.
func (m *Manager) Len() int {
	return m.catalog.Len()
}

// Stats returns catalog bucket usage.
func (m *Manager) Stats() catalog.Stats {
	return m.catalog.Stats()
}

// Settings returns the settings in use.
func (m *Manager) Settings() *config.Settings {
	return m.settings
}

// ImportDirectory scans dir for audio files and inserts their tracks.
func (m *Manager) ImportDirectory(ctx context.Context, dir string) (int, error) {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", dir), Level: LevelVerbose})

	result, err := m.scanner.Scan(ctx, dir)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error scanning %s: %v", dir, err), Level: LevelError})
		return 0, err
	}

	reportFailed(m.onProgress, m.log, result.Failed)
	added := m.AddTracks(result.Tracks)
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Imported %d of %d audio files from %s", added, len(result.Tracks), dir),
		Level:   LevelSuccess,
	}, zap.String("dir", dir), zap.Int("tracks", added), zap.Int("failed", len(result.Failed)))
	return added, nil
}

// ExportPlaylist renders every track as a playlist and writes it to path.
//
// An empty path uses ExportPath with the playlist extension. The playlist
// title is the file name without extension.
func (m *Manager) ExportPlaylist(ctx context.Context, path string, format model.PlaylistFormat) (string, error) {
	if path == "" {
		base := m.ExportPath()
		path = strings.TrimSuffix(base, filepath.Ext(base)) + format.Extension()
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	creator := audio.NewPlaylistCreator(format, m.settings.M3UExtended)
	tracks := m.catalog.All()
	content := creator.CreatePlaylist(title, tracks)

	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelError})
		return path, err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Created %s playlist with %d tracks: %s", format, len(tracks), path),
		Level:   LevelSuccess,
	}, zap.String("path", path), zap.Stringer("format", format))
	return path, nil
}

func (m *Manager) reportMalformed(warnings []*ioutils.MalformedLineError) {
	reportMalformed(m.onProgress, m.log, warnings)
}

func reportMalformed(onProgress func(ProgressEvent), log *zap.Logger, warnings []*ioutils.MalformedLineError) {
	for _, w := range warnings {
		emit(onProgress, log, ProgressEvent{
			Message: fmt.Sprintf("Invalid duration value on line %d: track %q by artist %q. Skipping track.",
				w.Line, w.Title, w.Artist),
			Level: LevelWarning,
		}, zap.Int("line", w.Line), zap.String("title", w.Title),
			zap.String("artist", w.Artist), zap.String("value", w.Value))
	}
}

func reportFailed(onProgress func(ProgressEvent), log *zap.Logger, failed []*audio.FileError) {
	for _, f := range failed {
		emit(onProgress, log, ProgressEvent{
			Message: fmt.Sprintf("Could not read %s: %v", f.Path, f.Err),
			Level:   LevelWarning,
		}, zap.String("path", f.Path), zap.Error(f.Err))
	}
}

func (m *Manager) progress(event ProgressEvent, fields ...zap.Field) {
	emit(m.onProgress, m.log, event, fields...)
}

// emit logs event at its level and forwards it to onProgress.
func emit(onProgress func(ProgressEvent), log *zap.Logger, event ProgressEvent, fields ...zap.Field) {
	switch event.Level {
	case LevelVerbose:
		log.Debug(event.Message, fields...)
	case LevelWarning:
		log.Warn(event.Message, fields...)
	case LevelError:
		log.Error(event.Message, fields...)
	default:
		log.Info(event.Message, fields...)
	}

	if onProgress != nil {
		onProgress(event)
	}
}
