package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDiarization(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateWhisperX()
}

func (c *Config) validateDiarization() error {
	if err := c.DiarizationOptions().Validate(); err != nil {
		return fmt.Errorf("diarization: %w", err)
	}
	if err := c.SpeakerHints().Validate(); err != nil {
		return fmt.Errorf("diarization: %w", err)
	}
	return nil
}

func (c *Config) validateOutput() error {
	for _, format := range c.Output.Formats {
		if !slices.Contains(knownFormats, format) {
			return fmt.Errorf("output.formats: unsupported format %q (supported: %v)", format, knownFormats)
		}
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.Concurrency < 1 {
		return errors.New("pipeline.concurrency must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateWhisperX() error {
	switch c.WhisperX.VADMethod {
	case "silero", "pyannote":
		return nil
	default:
		return fmt.Errorf("whisperx.vad_method must be silero or pyannote, got %q", c.WhisperX.VADMethod)
	}
}
