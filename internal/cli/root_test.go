package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	ioutils "github.com/handiism/track-library/internal/io"
	"github.com/handiism/track-library/internal/library"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

const sampleTracks = "Bohemian Rhapsody\tQueen\t354\n" +
	"Imagine\tJohn Lennon\t183\n" +
	"bohemian rhapsody\tqueen\t354\n"

func writeTracks(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracks.txt")
	if err := os.WriteFile(path, []byte(sampleTracks), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(strings.NewReader(input), &out, &errOut)
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRoot_RequiresOneArgument(t *testing.T) {
	for _, args := range [][]string{nil, {"a.txt", "b.txt"}} {
		out, errOut, err := execute(t, "", args...)
		if err == nil {
			t.Fatalf("args %v: expected an error", args)
		}
		if !strings.Contains(out+errOut, "Usage:") {
			t.Errorf("args %v: usage not printed:\n%s%s", args, out, errOut)
		}
	}
}

func TestRoot_Menu(t *testing.T) {
	out, _, err := execute(t, "3\nQUEEN\n0\n", writeTracks(t))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	for _, want := range []string{
		"Warning: Duplicate track found on line 1",
		"Loaded 2 tracks from",
		"MAIN MENU",
		"Bohemian Rhapsody",
		"Exiting...",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRoot_SourceUnavailable(t *testing.T) {
	out, errOut, err := execute(t, "", filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ioutils.ErrSourceUnavailable) {
		t.Fatalf("error = %v, want ErrSourceUnavailable", err)
	}
	if strings.Contains(out+errOut, "Usage:") {
		t.Errorf("usage printed for a runtime error:\n%s%s", out, errOut)
	}
}

func TestRoot_EmptySource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "", path); !errors.Is(err, ioutils.ErrEmptySource) {
		t.Fatalf("error = %v, want ErrEmptySource", err)
	}
}

func TestExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "library.pls")
	if _, _, err := execute(t, "", "export", writeTracks(t), "--format", "pls", "--output", out); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "[playlist]\n") || !strings.Contains(string(data), "NumberOfEntries=2") {
		t.Errorf("unexpected playlist:\n%s", data)
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	_, _, err := execute(t, "", "export", writeTracks(t), "--format", "xspf")
	if err == nil || !strings.Contains(err.Error(), "unknown playlist format") {
		t.Fatalf("error = %v, want unknown playlist format", err)
	}
}

func TestStats(t *testing.T) {
	out, _, err := execute(t, "", "stats", writeTracks(t), "--capacity", "1")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"Longest chain", "2.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScan_NoAudio(t *testing.T) {
	_, _, err := execute(t, "", "scan", t.TempDir())
	if !errors.Is(err, library.ErrNoTracks) {
		t.Fatalf("error = %v, want ErrNoTracks", err)
	}
}

func TestConfigAndLogFile(t *testing.T) {
	dir := t.TempDir()
	exportDir := filepath.Join(dir, "exports")
	cfg := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(cfg, []byte("export_directory: "+exportDir+"\nplaylist_format: wpl\n"), 0644); err != nil {
		t.Fatal(err)
	}
	logFile := filepath.Join(dir, "logs", "tracklib.log")

	if _, _, err := execute(t, "", "export", writeTracks(t), "--config", cfg, "--log-file", logFile); err != nil {
		t.Fatalf("execute: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(exportDir, "*.wpl"))
	if err != nil || len(matches) != 1 {
		t.Errorf("wpl playlist not written to export dir: %v %v", matches, err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	if !strings.Contains(string(data), "Duplicate track found on line 1") {
		t.Errorf("log file missing duplicate warning:\n%s", data)
	}
}
