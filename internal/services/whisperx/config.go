package whisperx

// Config selects the model and runtime for a transcription run.
type Config struct {
	Model       string
	CUDAEnabled bool
	// VADMethod is "silero" or "pyannote"; pyannote VAD needs HFToken.
	VADMethod string
	HFToken   string
	// Diarize asks WhisperX to run its bundled pyannote diarization too, so
	// one run yields both merge inputs.
	Diarize bool
}

const (
	UVXCommand    = "uvx"
	FFmpegCommand = "ffmpeg"

	DefaultModel      = "large-v3"
	VADMethodSilero   = "silero"
	VADMethodPyannote = "pyannote"
)

const (
	pypiIndex = "https://pypi.org/simple"
	cudaIndex = "https://download.pytorch.org/whl/cu128"
)

// decodingFlags are fixed for every run. Sentence resolution keeps each
// segment short enough to belong to one speaker.
var decodingFlags = []string{
	"--output_format", "json",
	"--segment_resolution", "sentence",
	"--batch_size", "4",
	"--chunk_size", "15",
	"--vad_onset", "0.08",
	"--vad_offset", "0.07",
	"--beam_size", "10",
	"--best_of", "10",
	"--temperature", "0.0",
	"--patience", "1.0",
}
