package config

import "speakerline/internal/diarization"

const (
	defaultConfigPath      = "~/.config/speakerline/config.toml"
	projectConfigFile      = "speakerline.toml"
	defaultOutputDir       = "~/.local/share/speakerline/output"
	defaultLogDir          = "~/.local/share/speakerline/logs"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultConcurrency     = 2
	defaultUnknownLanguage = "unknown"
	defaultTranscription   = "WhisperX"
	defaultDiarization     = "pyannote.audio 3.1"
	defaultWhisperXModel   = "large-v3"
	defaultVADMethod       = "silero"
)

// Export format names accepted in output.formats.
var knownFormats = []string{"json", "yaml", "text", "markdown", "html"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	cleaning := diarization.DefaultOptions()
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Diarization: Diarization{
			MinDuration: cleaning.MinDuration,
			MaxMergeGap: cleaning.MaxMergeGap,
		},
		Output: Output{
			Pretty:  true,
			Formats: []string{"json"},
		},
		Pipeline: Pipeline{
			Concurrency:     defaultConcurrency,
			UnknownLanguage: defaultUnknownLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Models: Models{
			Transcription: defaultTranscription,
			Diarization:   defaultDiarization,
		},
		WhisperX: WhisperX{
			Model:     defaultWhisperXModel,
			VADMethod: defaultVADMethod,
		},
	}
}
