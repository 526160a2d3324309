// Package textutil provides small text helpers shared by the CLI, reports,
// and output naming: filesystem-safe names and display-width aware
// truncation.
package textutil
