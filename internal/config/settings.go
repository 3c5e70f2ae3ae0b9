package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	ioutils "github.com/handiism/track-library/internal/io"
	"github.com/handiism/track-library/internal/logger"
	"github.com/handiism/track-library/internal/model"
)

// Environment variables read by ApplyEnv.
const (
	EnvExportDir        = "TRACKLIB_EXPORT_DIR"
	EnvExportFormat     = "TRACKLIB_EXPORT_FORMAT"
	EnvPlaylistFormat   = "TRACKLIB_PLAYLIST_FORMAT"
	EnvLogLevel         = "TRACKLIB_LOG_LEVEL"
	EnvLogFile          = "TRACKLIB_LOG_FILE"
	EnvScanConcurrency  = "TRACKLIB_SCAN_CONCURRENCY"
	defaultEnvFileName  = ".env"
	defaultLogMaxSizeMB = 10
)

// Settings holds all configuration options.
type Settings struct {
	// Export settings
	ExportDirectory      string `json:"export_directory" yaml:"export_directory"`
	ExportFileNameFormat string `json:"export_file_name_format" yaml:"export_file_name_format"`
	ConfirmSave          bool   `json:"confirm_save" yaml:"confirm_save"`

	// Playlist settings
	PlaylistFormat string `json:"playlist_format" yaml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended" yaml:"m3u_extended"`

	// Audio directory import
	ScanConcurrency int      `json:"scan_concurrency" yaml:"scan_concurrency"`
	ScanExtensions  []string `json:"scan_extensions" yaml:"scan_extensions"`

	// Logging
	LogLevel      string `json:"log_level" yaml:"log_level"` // debug, info, warn, error
	LogFile       string `json:"log_file" yaml:"log_file"`
	LogMaxSize    int    `json:"log_max_size" yaml:"log_max_size"`
	LogMaxBackups int    `json:"log_max_backups" yaml:"log_max_backups"`
	LogMaxAge     int    `json:"log_max_age" yaml:"log_max_age"`
	LogCompress   bool   `json:"log_compress" yaml:"log_compress"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		ExportDirectory:      ".",
		ExportFileNameFormat: ioutils.DefaultExportFileNameFormat,
		ConfirmSave:          true,

		PlaylistFormat: "m3u",
		M3UExtended:    true,

		ScanConcurrency: runtime.NumCPU(),
		ScanExtensions:  []string{".mp3", ".m4a", ".flac", ".ogg"},

		LogLevel:      string(logger.WarnLevel),
		LogMaxSize:    defaultLogMaxSizeMB,
		LogMaxBackups: 3,
		LogMaxAge:     28,
	}
}

// Load reads settings from a JSON or YAML file.
//
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
// A missing file yields the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from environment variables.
//
// Values are read from the given dotenv files (".env" in the working
// directory when none are given; a missing file is not an error). Variables
// set in the process environment take precedence over dotenv files.
func (s *Settings) ApplyEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{defaultEnvFileName}
	}

	vars := map[string]string{}
	for _, file := range files {
		fileVars, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("read %s: %w", file, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}

	if v, ok := lookup(EnvExportDir); ok {
		s.ExportDirectory = v
	}
	if v, ok := lookup(EnvExportFormat); ok {
		s.ExportFileNameFormat = v
	}
	if v, ok := lookup(EnvPlaylistFormat); ok {
		s.PlaylistFormat = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		s.LogLevel = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		s.LogFile = v
	}
	if v, ok := lookup(EnvScanConcurrency); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvScanConcurrency, err)
		}
		s.ScanConcurrency = n
	}

	return nil
}

// Playlist converts the playlist settings to a model.PlaylistFormat.
// Unknown names fall back to M3U.
func (s *Settings) Playlist() model.PlaylistFormat {
	pf, _ := model.ParsePlaylistFormat(s.PlaylistFormat)
	return pf
}

// LoggerConfig converts settings to a logger.Config.
//
// verbose enables debug-level output on stderr in addition to the log file.
func (s *Settings) LoggerConfig(verbose bool) logger.Config {
	cfg := logger.Config{
		Level:      logger.LogLevel(s.LogLevel),
		OutputPath: s.LogFile,
		MaxSize:    s.LogMaxSize,
		MaxBackups: s.LogMaxBackups,
		MaxAge:     s.LogMaxAge,
		Compress:   s.LogCompress,
	}
	if verbose {
		cfg.Level = logger.DebugLevel
		cfg.Console = true
	}
	return cfg
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
