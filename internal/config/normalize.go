package config

import (
	"fmt"
	"os"
	"strings"
)

// applyEnv lets environment variables replace defaults. Values from a
// config file still win.
func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("SPEAKERLINE_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("SPEAKERLINE_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.TrimSpace(value)
	}
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOutput()
	c.normalizePipeline()
	c.normalizeLogging()
	c.normalizeModels()
	c.normalizeWhisperX()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOutput() {
	seen := make(map[string]struct{}, len(c.Output.Formats))
	formats := make([]string, 0, len(c.Output.Formats))
	for _, format := range c.Output.Formats {
		format = strings.ToLower(strings.TrimSpace(format))
		switch format {
		case "":
			continue
		case "md":
			format = "markdown"
		case "txt":
			format = "text"
		case "yml":
			format = "yaml"
		}
		if _, ok := seen[format]; ok {
			continue
		}
		seen[format] = struct{}{}
		formats = append(formats, format)
	}
	if len(formats) == 0 {
		formats = []string{"json"}
	}
	c.Output.Formats = formats
}

func (c *Config) normalizePipeline() {
	if c.Pipeline.Concurrency == 0 {
		c.Pipeline.Concurrency = defaultConcurrency
	}
	c.Pipeline.UnknownLanguage = strings.TrimSpace(c.Pipeline.UnknownLanguage)
	if c.Pipeline.UnknownLanguage == "" {
		c.Pipeline.UnknownLanguage = defaultUnknownLanguage
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeModels() {
	c.Models.Transcription = strings.TrimSpace(c.Models.Transcription)
	if c.Models.Transcription == "" {
		c.Models.Transcription = defaultTranscription
	}
	c.Models.Diarization = strings.TrimSpace(c.Models.Diarization)
	if c.Models.Diarization == "" {
		c.Models.Diarization = defaultDiarization
	}
}

func (c *Config) normalizeWhisperX() {
	c.WhisperX.Model = strings.TrimSpace(c.WhisperX.Model)
	if c.WhisperX.Model == "" {
		c.WhisperX.Model = defaultWhisperXModel
	}
	c.WhisperX.VADMethod = strings.ToLower(strings.TrimSpace(c.WhisperX.VADMethod))
	if c.WhisperX.VADMethod == "" {
		c.WhisperX.VADMethod = defaultVADMethod
	}
	c.WhisperX.HFToken = strings.TrimSpace(c.WhisperX.HFToken)
	if c.WhisperX.HFToken == "" {
		if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			c.WhisperX.HFToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.WhisperX.HFToken = strings.TrimSpace(value)
		}
	}
}
