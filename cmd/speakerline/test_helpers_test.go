package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"speakerline/internal/config"
	"speakerline/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	inputDir   string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SPEAKERLINE_OUTPUT_DIR", "")
	t.Setenv("SPEAKERLINE_LOG_LEVEL", "")
	cfg.Logging.Level = "error"

	env := &cliTestEnv{
		cfg:        cfg,
		configPath: filepath.Join(base, "speakerline.toml"),
		baseDir:    base,
		inputDir:   filepath.Join(base, "inputs"),
	}
	writeTestConfig(t, env.configPath, cfg)
	return env
}

func (e *cliTestEnv) writeInputs(t *testing.T) (transcript, diarization string) {
	t.Helper()
	transcript = testsupport.WriteWhisperX(t, e.inputDir, "interview.json", "en", []testsupport.Segment{
		{Start: 0, End: 4, Text: "Welcome to the show"},
		{Start: 4, End: 10, Text: "Thanks for having me here today"},
	})
	diarization = testsupport.WriteRTTM(t, e.inputDir, "interview.rttm", []testsupport.Turn{
		{Start: 0, End: 4, Speaker: "SPEAKER_00"},
		{Start: 4, End: 10, Speaker: "SPEAKER_01"},
	})
	return transcript, diarization
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
