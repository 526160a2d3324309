// Package report renders snapshots for people: a plain-text transcript,
// a Markdown question/answer report, HTML converted from that Markdown, and
// YAML exports.
package report
