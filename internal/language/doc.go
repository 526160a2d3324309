// Package language normalizes the language codes reported by the
// transcription collaborator.
//
// A small table covers the languages interviews are usually recorded in;
// anything else is parsed as a BCP 47 tag and reduced to its base language.
package language
