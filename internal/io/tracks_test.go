package ioutils

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/handiism/track-library/internal/model"
)

func TestParseTracks(t *testing.T) {
	input := "Title1\tArtist1\t120\n" +
		"Title2\tArtist2\tabc\n" +
		"Title3\tArtist1\t240\r\n" +
		"Title4\tArtist3\t 60 \textra\tfields\n" +
		"\n" +
		"Only a title\n" +
		"Title5\tArtist4\t-15\n"

	tracks, warnings, err := ParseTracks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTracks: %v", err)
	}

	want := []model.Track{
		model.NewTrack(1, "Title1", "Artist1", 120),
		model.NewTrack(3, "Title3", "Artist1", 240),
		model.NewTrack(4, "Title4", "Artist3", 60),
		model.NewTrack(7, "Title5", "Artist4", -15),
	}
	if len(tracks) != len(want) {
		t.Fatalf("got %d tracks, want %d: %v", len(tracks), len(want), tracks)
	}
	for i := range want {
		if tracks[i] != want[i] {
			t.Errorf("track %d = %v, want %v", i, tracks[i], want[i])
		}
	}

	wantLines := []int{2, 5, 6}
	if len(warnings) != len(wantLines) {
		t.Fatalf("got %d warnings, want %d", len(warnings), len(wantLines))
	}
	for i, line := range wantLines {
		if warnings[i].Line != line {
			t.Errorf("warning %d line = %d, want %d", i, warnings[i].Line, line)
		}
	}
	if warnings[0].Title != "Title2" || warnings[0].Artist != "Artist2" || warnings[0].Value != "abc" {
		t.Errorf("warning[0] = %+v", warnings[0])
	}
	if warnings[2].Title != "Only a title" || warnings[2].Artist != "" {
		t.Errorf("warning[2] = %+v", warnings[2])
	}
}

func TestParseTracks_LongLine(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	input := long + "\tArtist\t10\n" +
		"Short\tArtist\t20\n" +
		long + "\tArtist\tbad\n" +
		"Last\tArtist\t30"

	tracks, warnings, err := ParseTracks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTracks: %v", err)
	}

	if len(tracks) != 3 {
		t.Fatalf("got %d tracks, want 3", len(tracks))
	}
	if tracks[0].Title != long || tracks[0].Line != 1 {
		t.Errorf("long track not kept intact: line %d, title length %d", tracks[0].Line, len(tracks[0].Title))
	}
	if tracks[1].Title != "Short" || tracks[1].Line != 2 {
		t.Errorf("track[1] = %v", tracks[1])
	}
	if tracks[2].Title != "Last" || tracks[2].Line != 4 {
		t.Errorf("unterminated last line = %v", tracks[2])
	}
	if len(warnings) != 1 || warnings[0].Line != 3 {
		t.Errorf("warnings = %v, want one on line 3", warnings)
	}
}

func TestMalformedLineError(t *testing.T) {
	_, warnings, _ := ParseTracks(strings.NewReader("Song\tBand\tlong\n"))
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}

	w := warnings[0]
	msg := w.Error()
	for _, part := range []string{"line 1", `"Song"`, `"Band"`} {
		if !strings.Contains(msg, part) {
			t.Errorf("Error() = %q, missing %s", msg, part)
		}
	}
	if w.Unwrap() == nil {
		t.Error("Unwrap() should return the strconv error")
	}
}

func TestLoadTracks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracks.txt")
	if err := os.WriteFile(path, []byte("A\tB\t1\nC\tD\tx\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tracks, warnings, err := LoadTracks(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadTracks: %v", err)
	}
	if len(tracks) != 1 || len(warnings) != 1 {
		t.Errorf("got %d tracks and %d warnings, want 1 and 1", len(tracks), len(warnings))
	}
}

func TestLoadTracks_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "missing.txt"), ErrSourceUnavailable},
		{"directory", dir, ErrSourceUnavailable},
		{"empty", empty, ErrEmptySource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadTracks(context.Background(), tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadTracks(%s) error = %v, want %v", tt.name, err, tt.want)
			}
		})
	}
}

func TestLoadTracks_MissingWrapsNotExist(t *testing.T) {
	_, _, err := LoadTracks(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want it to wrap os.ErrNotExist", err)
	}
}

func TestLoadTracks_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := LoadTracks(ctx, "whatever.txt"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestWriteTracks(t *testing.T) {
	tracks := []model.Track{
		model.NewTrack(1, "Title1", "Artist1", 120),
		model.NewTrack(2, "Title2", "Artist2", -3),
	}

	var buf bytes.Buffer
	if err := WriteTracks(&buf, tracks); err != nil {
		t.Fatalf("WriteTracks: %v", err)
	}

	want := "Title1\tArtist1\t120\nTitle2\tArtist2\t-3\n"
	if buf.String() != want {
		t.Errorf("WriteTracks wrote %q, want %q", buf.String(), want)
	}
}

func TestSaveTracks_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	tracks := []model.Track{
		model.NewTrack(1, "Title1", "Artist1", 120),
		model.NewTrack(2, "Title2", "Artist2", 180),
	}

	if err := SaveTracks(context.Background(), path, tracks); err != nil {
		t.Fatalf("SaveTracks: %v", err)
	}

	loaded, warnings, err := LoadTracks(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadTracks: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(loaded) != len(tracks) {
		t.Fatalf("loaded %d tracks, want %d", len(loaded), len(tracks))
	}
	for i := range tracks {
		if loaded[i] != tracks[i] {
			t.Errorf("track %d = %v, want %v", i, loaded[i], tracks[i])
		}
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2023, 4, 16, 14, 5, 9, 0, time.UTC)

	tests := []struct {
		format string
		want   string
	}{
		{"", "tracks_2023-04-16_14-05-09.txt"},
		{"library-{timestamp}.tsv", "library-2023-04-16_14-05-09.tsv"},
		{"fixed.txt", "fixed.txt"},
		{"bad:name_{timestamp}.txt", "bad_name_2023-04-16_14-05-09.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ExportFileName(tt.format, now); got != tt.want {
				t.Errorf("ExportFileName(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}
