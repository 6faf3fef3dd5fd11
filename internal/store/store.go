// Package store reads the recorder's shared state documents.
//
// Loads never fail: a missing file, a write caught mid-rename, or a
// malformed document all produce the zero state. Fields are validated
// one by one, so a single bad field is dropped without rejecting the
// rest of the document.
package store

import (
	"encoding/json"
	"math"
	"os"
	"time"

	"github.com/whispr-io/whisprtray/internal/models"
)

// Store reads the two state documents from fixed paths.
type Store struct {
	recordingPath string
	trayPath      string
}

// New creates a store reading from the given document paths.
func New(recordingPath, trayPath string) *Store {
	return &Store{
		recordingPath: recordingPath,
		trayPath:      trayPath,
	}
}

// Recording loads and parses overlay.json.
func (s *Store) Recording() models.RecordingState {
	return ParseRecording(readFile(s.recordingPath))
}

// Tray loads and parses tray.json.
func (s *Store) Tray() models.TrayState {
	return ParseTray(readFile(s.trayPath))
}

func readFile(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

// ParseRecording parses an overlay.json payload, tolerating bad fields.
func ParseRecording(data []byte) models.RecordingState {
	var st models.RecordingState

	raw := decodeObject(data)
	if raw == nil {
		return st
	}

	st.Recording = boolField(raw, "recording")
	st.StartedAtMs = intField(raw, "started_at_ms")
	st.UpdatedAtMs = intField(raw, "updated_at_ms")
	st.Level = clampLevel(floatField(raw, "level"))
	return st
}

// ParseTray parses a tray.json payload, tolerating bad fields.
func ParseTray(data []byte) models.TrayState {
	var st models.TrayState

	raw := decodeObject(data)
	if raw == nil {
		return st
	}

	st.UpdatedAtMs = intField(raw, "updated_at_ms")
	st.LastTranscriptAtMs = intField(raw, "last_transcript_at_ms")
	st.LastErrorAtMs = intField(raw, "last_error_at_ms")
	st.LastError = stringField(raw, "last_error")

	if items, ok := raw["recent"].([]interface{}); ok {
		for _, item := range items {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			st.Recent = append(st.Recent, models.Transcript{
				ID:          stringField(entry, "id"),
				CreatedAtMs: intField(entry, "created_at"),
				DurationMs:  intField(entry, "duration_ms"),
				Text:        stringField(entry, "text"),
				Preview:     stringField(entry, "preview"),
			})
		}
	}

	if hotkeys, ok := raw["hotkeys"].(map[string]interface{}); ok {
		st.Hotkeys = make(map[string]string, len(hotkeys))
		for name, v := range hotkeys {
			if display, ok := v.(string); ok {
				st.Hotkeys[name] = display
			}
		}
	}

	return st
}

// Fresh applies the staleness rule: a document claiming "recording"
// whose updated_at_ms is older than staleAfter is distrusted and
// normalized to idle. This is how the indicator self-heals after the
// recorder crashes mid-recording. Exactly at the threshold is fresh.
func Fresh(st models.RecordingState, now time.Time, staleAfter time.Duration) models.RecordingState {
	if !st.Recording {
		return st
	}
	if st.UpdatedAtMs != 0 && now.UnixMilli()-st.UpdatedAtMs <= staleAfter.Milliseconds() {
		return st
	}
	return models.RecordingState{UpdatedAtMs: st.UpdatedAtMs}
}

// decodeObject unmarshals a JSON object, or nil for anything else.
func decodeObject(data []byte) map[string]interface{} {
	if len(data) == 0 {
		return nil
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return raw
}

// Field helpers treat a missing or wrongly-typed value as absent.
// encoding/json decodes every JSON number to float64.

func boolField(raw map[string]interface{}, key string) bool {
	v, _ := raw[key].(bool)
	return v
}

func stringField(raw map[string]interface{}, key string) string {
	v, _ := raw[key].(string)
	return v
}

func intField(raw map[string]interface{}, key string) int64 {
	v, ok := raw[key].(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(v)
}

func floatField(raw map[string]interface{}, key string) float64 {
	v, ok := raw[key].(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampLevel(level float64) float64 {
	if level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}
