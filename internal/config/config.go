package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"speakerline/internal/diarization"
	"speakerline/internal/services"
	"speakerline/internal/services/whisperx"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Diarization contains identity span cleaning thresholds and the speaker
// hints forwarded to the diarization collaborator.
type Diarization struct {
	MinDuration float64 `toml:"min_duration"`
	MaxMergeGap float64 `toml:"max_merge_gap"`
	NumSpeakers int     `toml:"num_speakers"`
	MinSpeakers int     `toml:"min_speakers"`
	MaxSpeakers int     `toml:"max_speakers"`
}

// Output controls how snapshots and exports are written.
type Output struct {
	Pretty  bool     `toml:"pretty"`
	Gzip    bool     `toml:"gzip"`
	Formats []string `toml:"formats"`
}

// Pipeline contains batch processing settings.
type Pipeline struct {
	Concurrency     int    `toml:"concurrency"`
	UnknownLanguage string `toml:"unknown_language"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Models names the collaborators recorded in snapshot metadata.
type Models struct {
	Transcription string `toml:"transcription"`
	Diarization   string `toml:"diarization"`
}

// WhisperX contains the settings used when planning collaborator commands.
type WhisperX struct {
	Model       string `toml:"model"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	VADMethod   string `toml:"vad_method"`
	HFToken     string `toml:"hf_token"`
	Diarize     bool   `toml:"diarize"`
}

// Config encapsulates all configuration values for speakerline.
//
// Configuration sections by subsystem:
//   - Paths: output and log directories
//   - Diarization: span cleaning thresholds and speaker hints
//   - Output: snapshot encoding and export formats
//   - Pipeline: batch concurrency and language fallback
//   - Logging: log format and level
//   - Models: collaborator labels for snapshot metadata
//   - WhisperX: transcription command planning
type Config struct {
	Paths       Paths       `toml:"paths"`
	Diarization Diarization `toml:"diarization"`
	Output      Output      `toml:"output"`
	Pipeline    Pipeline    `toml:"pipeline"`
	Logging     Logging     `toml:"logging"`
	Models      Models      `toml:"models"`
	WhisperX    WhisperX    `toml:"whisperx"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()
	cfg.applyEnv()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "open", resolvedPath, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "normalize", "", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "validate", "", err)
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigFile)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DiarizationOptions returns the cleaning thresholds.
func (c *Config) DiarizationOptions() diarization.Options {
	return diarization.Options{
		MinDuration: c.Diarization.MinDuration,
		MaxMergeGap: c.Diarization.MaxMergeGap,
	}
}

// SpeakerHints returns the speaker-count hints for the collaborator.
func (c *Config) SpeakerHints() diarization.Hints {
	return diarization.Hints{
		NumSpeakers: c.Diarization.NumSpeakers,
		MinSpeakers: c.Diarization.MinSpeakers,
		MaxSpeakers: c.Diarization.MaxSpeakers,
	}
}

// WhisperXConfig returns the transcription command settings.
func (c *Config) WhisperXConfig() whisperx.Config {
	return whisperx.Config{
		Model:       c.WhisperX.Model,
		CUDAEnabled: c.WhisperX.CUDAEnabled,
		VADMethod:   c.WhisperX.VADMethod,
		HFToken:     c.WhisperX.HFToken,
		Diarize:     c.WhisperX.Diarize,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
