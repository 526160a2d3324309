// Package preflight provides readiness checks for the filesystem paths and
// external tools speakerline depends on.
//
// The CLI "speakerline preflight" command prints every result, and the
// process and batch commands call RunAll before touching any input so a
// missing file or unwritable output directory fails fast with a clear
// message. Tool checks for the transcription collaborators are optional:
// speakerline only consumes their output.
package preflight
