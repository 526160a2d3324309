// Package whisperx reads transcription output into text spans and describes
// how the transcription collaborator is invoked.
//
// WhisperX (or plain Whisper) JSON and SRT files are supported. The package
// never runs the model itself; BuildArgs only produces the command line so
// operators can run it out of band.
//
// Configuration options (model, CUDA, VAD method) are passed via Config.
package whisperx
