package ioutils

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/handiism/track-library/internal/model"
)

// DefaultExportFileNameFormat matches the timestamped names of earlier exports.
const DefaultExportFileNameFormat = "tracks_{timestamp}.txt"

// timestampLayout renders {timestamp} as 2023-04-16_14-05-09.
const timestampLayout = "2006-01-02_15-04-05"

var (
	// ErrSourceUnavailable wraps failures to open or read a track file.
	ErrSourceUnavailable = errors.New("track source unavailable")

	// ErrEmptySource is returned for a zero-byte track file.
	ErrEmptySource = errors.New("track source is empty")
)

// MalformedLineError describes a line skipped because its duration
// field is not an integer.
type MalformedLineError struct {
	Line   int
	Title  string
	Artist string
	Value  string
	Err    error
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("invalid duration value %q on line %d: track %q by artist %q",
		e.Value, e.Line, e.Title, e.Artist)
}

func (e *MalformedLineError) Unwrap() error {
	return e.Err
}

// ParseTracks reads tab-separated records (title, artist, duration) from r.
//
// Lines are numbered from 1 in read order. Fields after the third are ignored
// and missing fields are read as empty. A line whose duration does not parse
// as an integer is skipped and reported in the returned warnings; parsing
// continues with the next line. Lines may be of any length. The error result
// is only set when r itself fails.
func ParseTracks(r io.Reader) ([]model.Track, []*MalformedLineError, error) {
	var (
		tracks   []model.Track
		warnings []*MalformedLineError
	)

	br := bufio.NewReader(r)

	lineNumber := 0
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return tracks, warnings, fmt.Errorf("read line %d: %w", lineNumber+1, readErr)
		}
		if line == "" && readErr == io.EOF {
			break
		}

		lineNumber++
		title, artist, durationStr := splitRecord(strings.TrimSuffix(line, "\n"))

		duration, err := strconv.Atoi(strings.TrimSpace(durationStr))
		if err != nil {
			warnings = append(warnings, &MalformedLineError{
				Line:   lineNumber,
				Title:  title,
				Artist: artist,
				Value:  durationStr,
				Err:    err,
			})
		} else {
			tracks = append(tracks, model.NewTrack(lineNumber, title, artist, duration))
		}

		if readErr == io.EOF {
			break
		}
	}

	return tracks, warnings, nil
}

// splitRecord returns the first three tab-separated fields of line.
func splitRecord(line string) (title, artist, duration string) {
	fields := strings.SplitN(strings.TrimSuffix(line, "\r"), "\t", 4)
	for len(fields) < 3 {
		fields = append(fields, "")
	}
	return fields[0], fields[1], fields[2]
}

// LoadTracks opens path and parses it with ParseTracks.
//
// Returns an error wrapping ErrSourceUnavailable if the file cannot be opened
// or read, and ErrEmptySource if it has no content. Malformed lines are
// returned as warnings alongside the valid tracks.
//
// Example:
//
//	tracks, warnings, err := LoadTracks(ctx, "tracks.txt")
//	if errors.Is(err, ErrSourceUnavailable) {
//	    // missing or unreadable
//	}
func LoadTracks(ctx context.Context, path string) ([]model.Track, []*MalformedLineError, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s is a directory", ErrSourceUnavailable, path)
	}
	if info.Size() == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrEmptySource, path)
	}

	tracks, warnings, err := ParseTracks(f)
	if err != nil {
		return tracks, warnings, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	return tracks, warnings, nil
}

// WriteTracks writes one "title\tartist\tduration" line per track, in order.
func WriteTracks(w io.Writer, tracks []model.Track) error {
	bw := bufio.NewWriter(w)
	for _, t := range tracks {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%d\n", t.Title, t.Artist, t.Duration); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveTracks writes tracks to path in the load format.
//
// The parent directory is created if needed and an existing file is
// truncated.
func SaveTracks(ctx context.Context, path string, tracks []model.Track) error {
	var buf bytes.Buffer
	if err := WriteTracks(&buf, tracks); err != nil {
		return err
	}
	return WriteFile(ctx, path, buf.Bytes())
}

// ExportFileName expands the {timestamp} placeholder of format using now.
//
// An empty format uses DefaultExportFileNameFormat. The result is passed
// through SanitizeFileName.
//
// Example:
//
//	ExportFileName("", now) // "tracks_2023-04-16_14-05-09.txt"
func ExportFileName(format string, now time.Time) string {
	if format == "" {
		format = DefaultExportFileNameFormat
	}
	name := strings.ReplaceAll(format, "{timestamp}", now.Format(timestampLayout))
	return SanitizeFileName(name)
}
