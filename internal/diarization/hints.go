package diarization

import "speakerline/internal/services"

// Hints carries optional speaker-count hints for the diarization collaborator.
// Zero means unset. The alignment core never interprets these values.
type Hints struct {
	NumSpeakers int `json:"num_speakers,omitempty" toml:"num_speakers"`
	MinSpeakers int `json:"min_speakers,omitempty" toml:"min_speakers"`
	MaxSpeakers int `json:"max_speakers,omitempty" toml:"max_speakers"`
}

// Validate checks the hints are non-negative and the range is ordered.
func (h Hints) Validate() error {
	if h.NumSpeakers < 0 || h.MinSpeakers < 0 || h.MaxSpeakers < 0 {
		return services.InvalidArgument("diarization", "hints", "speaker counts must be non-negative")
	}
	if h.MinSpeakers > 0 && h.MaxSpeakers > 0 && h.MinSpeakers > h.MaxSpeakers {
		return services.InvalidArgument("diarization", "hints", "min_speakers %d > max_speakers %d", h.MinSpeakers, h.MaxSpeakers)
	}
	return nil
}

// IsZero reports whether no hint is set.
func (h Hints) IsZero() bool {
	return h.NumSpeakers == 0 && h.MinSpeakers == 0 && h.MaxSpeakers == 0
}

// Args renders the hints as collaborator flags. An exact count takes
// precedence over the range.
func (h Hints) Args() []string {
	if h.NumSpeakers > 0 {
		return []string{"--num_speakers", itoa(h.NumSpeakers)}
	}
	var args []string
	if h.MinSpeakers > 0 {
		args = append(args, "--min_speakers", itoa(h.MinSpeakers))
	}
	if h.MaxSpeakers > 0 {
		args = append(args, "--max_speakers", itoa(h.MaxSpeakers))
	}
	return args
}
