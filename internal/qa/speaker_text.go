package qa

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SpeakerText is one speaker's joined text within a window.
type SpeakerText struct {
	Speaker string
	Text    string
}

// SpeakerTexts keeps speakers in order of first appearance. It marshals as a
// JSON object whose keys follow that order.
type SpeakerTexts []SpeakerText

// Speakers returns the labels in order.
func (s SpeakerTexts) Speakers() []string {
	out := make([]string, 0, len(s))
	for _, entry := range s {
		out = append(out, entry.Speaker)
	}
	return out
}

// Lookup returns the text for speaker.
func (s SpeakerTexts) Lookup(speaker string) (string, bool) {
	for _, entry := range s {
		if entry.Speaker == speaker {
			return entry.Text, true
		}
	}
	return "", false
}

// MarshalJSON writes an ordered object. A nil slice marshals as {}.
func (s SpeakerTexts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Speaker)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, preserving key order.
func (s *SpeakerTexts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("per_speaker_text: expected object, got %v", tok)
	}
	out := SpeakerTexts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("per_speaker_text: unexpected key %v", keyTok)
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("per_speaker_text[%s]: %w", key, err)
		}
		out = append(out, SpeakerText{Speaker: key, Text: text})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}
