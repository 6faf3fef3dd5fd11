// Package models defines the shared state documents and indicator settings.
package models

// RecordingState mirrors the recorder's overlay.json document.
// Millisecond timestamps use 0 to mean "absent".
type RecordingState struct {
	Recording   bool
	StartedAtMs int64
	Level       float64 // clamped to [0,1] on load
	UpdatedAtMs int64
}

// Transcript is one entry of the tray document's recent list.
type Transcript struct {
	ID          string
	CreatedAtMs int64
	DurationMs  int64
	Text        string
	Preview     string
}

// TrayState mirrors the recorder's tray.json document.
type TrayState struct {
	UpdatedAtMs        int64
	LastTranscriptAtMs int64
	LastErrorAtMs      int64
	LastError          string
	Recent             []Transcript // newest first, writer caps at 8
	Hotkeys            map[string]string
}

// Hotkey names the recorder writes.
const (
	HotkeyRecordToggle = "record_toggle"
	HotkeyPasteLast    = "paste_last"
	HotkeyOpenApp      = "open_app"
)

// Hotkey returns the display string for a hotkey name, or "".
func (t TrayState) Hotkey(name string) string {
	return t.Hotkeys[name]
}
