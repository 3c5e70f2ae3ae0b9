package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/handiism/track-library/internal/library"
	"github.com/handiism/track-library/internal/model"
)

const banner = `---------- MAIN MENU ----------
[1] Add tracks from a file
[2] Save tracks in the library to a file
[3] Search for tracks by artist
[4] Remove a track
[5] Export the library as a playlist
[6] Import tracks from an audio directory
[7] Show library statistics
[0] Exit
`

// Menu is a line-based interactive front end for a library.Manager.
type Menu struct {
	in      *bufio.Reader
	readErr error
	out     io.Writer
	verbose bool

	warn    *color.Color
	fail    *color.Color
	success *color.Color
	heading *color.Color
}

// New creates a Menu reading commands from in and writing to out.
// Verbose progress events are only printed when verbose is set.
func New(in io.Reader, out io.Writer, verbose bool) *Menu {
	return &Menu{
		in:      bufio.NewReader(in),
		out:     out,
		verbose: verbose,
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen),
		heading: color.New(color.FgCyan, color.Bold),
	}
}

// Report prints a progress event. It is meant to be passed as
// library.Options.OnProgress.
func (m *Menu) Report(event library.ProgressEvent) {
	switch event.Level {
	case library.LevelVerbose:
		if m.verbose {
			fmt.Fprintln(m.out, event.Message)
		}
	case library.LevelWarning:
		m.warn.Fprintln(m.out, "Warning: "+event.Message)
	case library.LevelError:
		m.fail.Fprintln(m.out, "Error: "+event.Message)
	case library.LevelSuccess:
		m.success.Fprintln(m.out, event.Message)
	default:
		fmt.Fprintln(m.out, event.Message)
	}
}

// Run shows the menu until the user exits or input ends.
//
// End of input is a normal exit. Only a read failure or a cancelled
// context is returned as an error.
func (m *Menu) Run(ctx context.Context, lib *library.Manager) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.out, banner)
		choice, ok := m.prompt("\nEnter your choice: ")
		if !ok {
			return m.readErr
		}

		var cont bool
		switch strings.ToLower(choice) {
		case "1":
			cont = m.addFromFile(ctx, lib)
		case "2":
			cont = m.save(ctx, lib)
		case "3":
			cont = m.search(lib)
		case "4":
			cont = m.remove(lib)
		case "5":
			cont = m.exportPlaylist(ctx, lib)
		case "6":
			cont = m.importDirectory(ctx, lib)
		case "7":
			m.PrintStats(lib)
			cont = true
		case "0", "q", "quit", "exit":
			fmt.Fprintln(m.out, "Exiting...")
			return nil
		default:
			m.warn.Fprintf(m.out, "\nInvalid choice %q. Please try again.\n\n", choice)
			cont = true
		}

		if !cont {
			return m.readErr
		}
		fmt.Fprintln(m.out)
	}
}

// prompt prints text and reads one trimmed line of any length. ok is false
// at end of input or when reading fails.
func (m *Menu) prompt(text string) (string, bool) {
	fmt.Fprint(m.out, text)
	line, err := m.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err != io.EOF {
			m.readErr = err
		}
		fmt.Fprintln(m.out)
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (m *Menu) addFromFile(ctx context.Context, lib *library.Manager) bool {
	path, ok := m.prompt("\nEnter the file name containing new tracks: ")
	if !ok {
		return false
	}
	// Failures were already reported through the progress callback.
	_, _ = lib.AddFromFile(ctx, path)
	return true
}

func (m *Menu) save(ctx context.Context, lib *library.Manager) bool {
	path := lib.ExportPath()
	fmt.Fprintf(m.out, "Saving tracks to file: %s\n", path)

	if lib.Settings().ConfirmSave {
		answer, ok := m.prompt(fmt.Sprintf("\nAre you sure you want to save the tracks to the file %s? (y/n): ", path))
		if !ok {
			return false
		}
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(m.out, "Save operation cancelled.")
			return true
		}
	}

	_, _, _ = lib.Save(ctx, path)
	return true
}

func (m *Menu) search(lib *library.Manager) bool {
	artist, ok := m.prompt("Enter the artist/band name to search: ")
	if !ok {
		return false
	}
	fmt.Fprintln(m.out)

	found := lib.Search(artist)
	if len(found) == 0 {
		m.warn.Fprintf(m.out, "No tracks found for artist %q.\n", artist)
		return true
	}

	m.heading.Fprintf(m.out, "Tracks found for artist %s:\n\n", artist)
	m.trackTable(found)
	return true
}

func (m *Menu) trackTable(tracks []model.Track) {
	table := tablewriter.NewWriter(m.out)
	table.SetHeader([]string{"Title", "Duration (seconds)"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, t := range tracks {
		table.Append([]string{t.Title, strconv.Itoa(t.Duration)})
	}
	table.Render()
}

func (m *Menu) remove(lib *library.Manager) bool {
	title, ok := m.prompt("Enter the track title: ")
	if !ok {
		return false
	}
	artist, ok := m.prompt("Enter the artist/band name: ")
	if !ok {
		return false
	}
	fmt.Fprintln(m.out)

	lib.Remove(title, artist)
	return true
}

func (m *Menu) exportPlaylist(ctx context.Context, lib *library.Manager) bool {
	def := lib.Settings().Playlist()
	answer, ok := m.prompt(fmt.Sprintf("Enter the playlist format (m3u, pls, wpl, zpl) [%s]: ", def))
	if !ok {
		return false
	}

	format := def
	if answer != "" {
		parsed, valid := model.ParsePlaylistFormat(answer)
		if !valid {
			m.warn.Fprintf(m.out, "Unknown playlist format %q.\n", answer)
			return true
		}
		format = parsed
	}

	_, _ = lib.ExportPlaylist(ctx, "", format)
	return true
}

func (m *Menu) importDirectory(ctx context.Context, lib *library.Manager) bool {
	dir, ok := m.prompt("Enter the directory containing audio files: ")
	if !ok {
		return false
	}
	_, _ = lib.ImportDirectory(ctx, dir)
	return true
}

// PrintStats prints the catalog bucket usage as a table.
func (m *Menu) PrintStats(lib *library.Manager) {
	st := lib.Stats()
	table := tablewriter.NewWriter(m.out)
	table.SetHeader([]string{"Statistic", "Value"})
	table.SetAutoFormatHeaders(false)
	table.AppendBulk([][]string{
		{"Tracks", strconv.Itoa(st.Tracks)},
		{"Buckets", strconv.Itoa(st.Capacity)},
		{"Used buckets", strconv.Itoa(st.UsedBuckets)},
		{"Longest chain", strconv.Itoa(st.LongestChain)},
		{"Load factor", strconv.FormatFloat(st.LoadFactor(), 'f', 2, 64)},
	})
	table.Render()
}
