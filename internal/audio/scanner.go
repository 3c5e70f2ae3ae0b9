package audio

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/track-library/internal/model"
)

// UnknownArtist is used for files whose tags name no artist.
const UnknownArtist = "Unknown Artist"

// DefaultExtensions are the file types the scanner reads when none are configured.
var DefaultExtensions = []string{".mp3", ".m4a", ".flac", ".ogg"}

// FileError reports a file the scanner could not read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ScanResult holds the outcome of a directory scan.
type ScanResult struct {
	// Tracks are in lexical path order. Line is the 1-based ordinal among
	// readable files.
	Tracks []model.Track

	// Failed lists files that matched an extension but could not be read.
	Failed []*FileError
}

// Scanner reads track metadata from audio files.
//
// MP3 files are read with id3v2, which also provides the TLEN duration frame.
// Other formats are read with dhowden/tag and get a zero duration, since
// their tag formats carry no length.
//
// Example:
//
//	scanner := NewScanner(4, nil)
//	result, err := scanner.Scan(ctx, "/music")
//	for _, failed := range result.Failed {
//	    log.Printf("skipped %s: %v", failed.Path, failed.Err)
//	}
type Scanner struct {
	concurrency int
	extensions  map[string]bool
}

// NewScanner creates a Scanner.
//
// concurrency bounds how many files are parsed at once (values below one use
// runtime.NumCPU()). extensions selects files by suffix, case-insensitively;
// nil uses DefaultExtensions.
func NewScanner(concurrency int, extensions []string) *Scanner {
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}

	return &Scanner{concurrency: concurrency, extensions: exts}
}

// Scan walks root and reads every matching file.
//
// Files are parsed concurrently but the result is ordered by path. Only a
// missing root or a cancelled context is an error; unreadable files are
// collected in ScanResult.Failed.
func (s *Scanner) Scan(ctx context.Context, root string) (*ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	result := &ScanResult{}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Failed = append(result.Failed, &FileError{Path: path, Err: err})
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if s.extensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tracks := make([]model.Track, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tracks[i], errs[i] = s.ReadFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, path := range paths {
		if errs[i] != nil {
			result.Failed = append(result.Failed, &FileError{Path: path, Err: errs[i]})
			continue
		}
		track := tracks[i]
		track.Line = len(result.Tracks) + 1
		result.Tracks = append(result.Tracks, track)
	}

	return result, nil
}

// ReadFile reads the tags of a single audio file.
//
// A missing title falls back to the file name without extension and a
// missing artist to UnknownArtist. Line is left zero.
func (s *Scanner) ReadFile(path string) (model.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Track{}, err
	}
	defer f.Close()

	var track model.Track
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		track, err = readID3(f)
	} else {
		track, err = readTag(f)
	}
	if err != nil {
		return model.Track{}, err
	}

	track.Path = path
	if track.Title == "" {
		track.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if track.Artist == "" {
		track.Artist = UnknownArtist
	}
	return track, nil
}

// readID3 reads title, artist (TPE1, then TPE2) and TLEN from an MP3.
func readID3(f *os.File) (model.Track, error) {
	t, err := id3v2.ParseReader(f, id3v2.Options{Parse: true})
	if err != nil {
		return model.Track{}, err
	}

	artist := t.Artist()
	if artist == "" {
		artist = t.GetTextFrame("TPE2").Text
	}

	return model.Track{
		Title:    strings.TrimSpace(t.Title()),
		Artist:   strings.TrimSpace(artist),
		Duration: parseTLEN(t.GetTextFrame("TLEN").Text),
	}, nil
}

// parseTLEN converts a TLEN value (milliseconds) to whole seconds.
func parseTLEN(value string) int {
	ms, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || ms < 0 {
		return 0
	}
	return ms / 1000
}

// readTag reads title and artist from any format dhowden/tag supports.
func readTag(f *os.File) (model.Track, error) {
	m, err := tag.ReadFrom(f)
	if err != nil {
		return model.Track{}, err
	}

	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}

	return model.Track{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(artist),
	}, nil
}
