// Package speakerstats aggregates aligned spans into per-speaker totals.
package speakerstats
