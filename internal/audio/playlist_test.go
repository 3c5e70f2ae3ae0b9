package audio

import (
	"strings"
	"testing"

	"github.com/handiism/track-library/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, false)

	content := creator.CreatePlaylist("Library", createTestTracks())

	if !strings.Contains(content, "Test Artist - track1.mp3") {
		t.Error("M3U should contain generated file name for text-loaded track")
	}
	if !strings.Contains(content, "/music/track2.mp3") {
		t.Error("M3U should contain the path of scanned track")
	}
	if strings.Contains(content, "#EXTINF") {
		t.Error("plain M3U should not contain #EXTINF")
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)

	content := creator.CreatePlaylist("Library", createTestTracks())

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:180,Test Artist - track1") {
		t.Error("Extended M3U should contain #EXTINF with duration and name")
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatPLS, false)

	content := creator.CreatePlaylist("Library", createTestTracks())

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=") {
		t.Error("PLS should contain File1=")
	}
	if !strings.Contains(content, "Length2=200") {
		t.Error("PLS should contain Length2=200")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries=2")
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatWPL, false)

	content := creator.CreatePlaylist("Library", createTestTracks())

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<title>Library</title>") {
		t.Error("WPL should contain playlist title")
	}
	if !strings.Contains(content, "<media src=") {
		t.Error("WPL should contain media elements")
	}
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatZPL, false)

	content := creator.CreatePlaylist("Library", createTestTracks())

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, `duration="180000"`) {
		t.Error("ZPL should contain duration in milliseconds")
	}
	if !strings.Contains(content, `<meta name="ItemCount" content="2"/>`) {
		t.Error("ZPL should contain item count")
	}
}

func TestPlaylistCreator_XMLEscape(t *testing.T) {
	tracks := []model.Track{model.NewTrack(1, `Track & "Quote"`, "Artist <Special>", 180)}

	creator := NewPlaylistCreator(model.PlaylistFormatWPL, false)
	content := creator.CreatePlaylist("Mix & Match", tracks)

	if !strings.Contains(content, "Mix &amp; Match") {
		t.Error("WPL should escape & as &amp;")
	}
	if strings.Contains(content, "<Special>") {
		t.Error("WPL should escape < and >")
	}
}

func TestEntryLocation_Sanitized(t *testing.T) {
	track := model.NewTrack(1, "Part 1/2", "AC/DC", 100)
	if got, want := EntryLocation(track), "AC_DC - Part 1_2.mp3"; got != want {
		t.Errorf("EntryLocation() = %q, want %q", got, want)
	}
}

func TestPlaylistCreator_Empty(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatPLS, false)
	content := creator.CreatePlaylist("Empty", nil)
	if !strings.Contains(content, "NumberOfEntries=0") {
		t.Error("empty PLS should report zero entries")
	}
}

func createTestTracks() []model.Track {
	track1 := model.NewTrack(1, "track1", "Test Artist", 180)
	track2 := model.NewTrack(2, "track2", "Test Artist", 200)
	track2.Path = "/music/track2.mp3"
	return []model.Track{track1, track2}
}
