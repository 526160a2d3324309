package alignment

// Summary counts alignment decisions by method.
type Summary struct {
	Total   int `json:"total"`
	Overlap int `json:"overlap"`
	Nearest int `json:"nearest"`
	Unknown int `json:"unknown"`
	// NearestIndexes lists the text span positions resolved by fallback.
	NearestIndexes []int `json:"nearest_indexes,omitempty"`
}

// Report tallies matches.
func Report(matches []Match) Summary {
	summary := Summary{Total: len(matches)}
	for i, match := range matches {
		switch match.Method {
		case MethodOverlap:
			summary.Overlap++
		case MethodNearest:
			summary.Nearest++
			summary.NearestIndexes = append(summary.NearestIndexes, i)
		default:
			summary.Unknown++
		}
	}
	return summary
}

// Degraded reports whether any span was attributed without direct overlap.
func (s Summary) Degraded() bool {
	return s.Nearest > 0 || s.Unknown > 0
}
