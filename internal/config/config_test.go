package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"speakerline/internal/config"
	"speakerline/internal/services"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SPEAKERLINE_OUTPUT_DIR", "")
	t.Setenv("SPEAKERLINE_LOG_LEVEL", "")
	t.Setenv("HUGGING_FACE_HUB_TOKEN", "")
	t.Setenv("HF_TOKEN", "")
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateEnv(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantOutput := filepath.Join(home, ".local", "share", "speakerline", "output")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	if cfg.Diarization.MinDuration != 0.5 || cfg.Diarization.MaxMergeGap != 0.5 {
		t.Fatalf("unexpected diarization defaults: %+v", cfg.Diarization)
	}
	if cfg.Pipeline.Concurrency != 2 {
		t.Fatalf("expected concurrency 2, got %d", cfg.Pipeline.Concurrency)
	}
	if cfg.Pipeline.UnknownLanguage != "unknown" {
		t.Fatalf("unexpected unknown language: %q", cfg.Pipeline.UnknownLanguage)
	}
	if len(cfg.Output.Formats) != 1 || cfg.Output.Formats[0] != "json" {
		t.Fatalf("unexpected formats: %v", cfg.Output.Formats)
	}
	if cfg.Models.Transcription != "WhisperX" || cfg.Models.Diarization != "pyannote.audio 3.1" {
		t.Fatalf("unexpected models: %+v", cfg.Models)
	}
	if cfg.WhisperX.VADMethod != "silero" {
		t.Fatalf("expected WhisperX VAD default to silero, got %q", cfg.WhisperX.VADMethod)
	}
	if !cfg.SpeakerHints().IsZero() {
		t.Fatalf("expected no speaker hints by default, got %+v", cfg.SpeakerHints())
	}
}

func TestLoadCustomConfigOverrides(t *testing.T) {
	home := isolateEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
output_dir = "~/transcripts"

[diarization]
min_duration = 0.25
max_merge_gap = 1.0
min_speakers = 2
max_speakers = 4

[output]
gzip = true
formats = ["JSON", "md", "txt", "md"]

[pipeline]
concurrency = 4

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected explicit config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.OutputDir != filepath.Join(home, "transcripts") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	opts := cfg.DiarizationOptions()
	if opts.MinDuration != 0.25 || opts.MaxMergeGap != 1.0 {
		t.Fatalf("unexpected diarization options: %+v", opts)
	}
	hints := cfg.SpeakerHints()
	if hints.MinSpeakers != 2 || hints.MaxSpeakers != 4 || hints.NumSpeakers != 0 {
		t.Fatalf("unexpected hints: %+v", hints)
	}
	want := []string{"json", "markdown", "text"}
	if strings.Join(cfg.Output.Formats, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected formats: %v", cfg.Output.Formats)
	}
	if !cfg.Output.Gzip {
		t.Fatal("expected gzip enabled")
	}
	if cfg.Pipeline.Concurrency != 4 {
		t.Fatalf("unexpected concurrency: %d", cfg.Pipeline.Concurrency)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadEnvironmentFallbacks(t *testing.T) {
	isolateEnv(t)
	outDir := filepath.Join(t.TempDir(), "env-output")
	t.Setenv("SPEAKERLINE_OUTPUT_DIR", outDir)
	t.Setenv("SPEAKERLINE_LOG_LEVEL", "warn")
	t.Setenv("HF_TOKEN", "hf-secret")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.OutputDir != outDir {
		t.Fatalf("expected env output dir, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
	if cfg.WhisperX.HFToken != "hf-secret" {
		t.Fatalf("expected env HF token, got %q", cfg.WhisperX.HFToken)
	}
}

func TestLoadFileValueBeatsEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SPEAKERLINE_LOG_LEVEL", "error")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected file level to win, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"negative min duration": "[diarization]\nmin_duration = -1.0\n",
		"inverted hint range":   "[diarization]\nmin_speakers = 4\nmax_speakers = 2\n",
		"unknown format":        "[output]\nformats = [\"pdf\"]\n",
		"zero concurrency":      "[pipeline]\nconcurrency = -1\n",
		"bad log format":        "[logging]\nformat = \"xml\"\n",
		"bad vad method":        "[whisperx]\nvad_method = \"webrtc\"\n",
		"unknown key":           "[paths]\nstaging_dir = \"/tmp\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(configPath)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded map[string]any
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	for _, section := range []string{"paths", "diarization", "output", "pipeline", "logging", "models", "whisperx"} {
		if _, ok := decoded[section]; !ok {
			t.Fatalf("sample missing [%s] section", section)
		}
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Diarization.MinDuration != 0.5 {
		t.Fatalf("unexpected sample min duration: %v", cfg.Diarization.MinDuration)
	}
}

func TestExpandPathHandlesTilde(t *testing.T) {
	home := isolateEnv(t)
	got, err := config.ExpandPath("~/data")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "data") {
		t.Fatalf("unexpected expansion: %q", got)
	}
	empty, err := config.ExpandPath("")
	if err != nil || empty != "" {
		t.Fatalf("expected empty path passthrough, got %q %v", empty, err)
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := config.Default()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Pipeline.Concurrency != cfg.Pipeline.Concurrency || decoded.Models != cfg.Models {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}
