package tray

import (
	_ "embed"

	"github.com/whispr-io/whisprtray/internal/presenter"
)

//go:embed icons/idle.png
var iconIdle []byte

//go:embed icons/recording.png
var iconRecording []byte

//go:embed icons/success.png
var iconSuccess []byte

//go:embed icons/error.png
var iconError []byte

// iconFor returns the tray icon bytes for a visual state.
func iconFor(v presenter.Visual) []byte {
	switch v {
	case presenter.VisualRecording:
		return iconRecording
	case presenter.VisualSuccessFlash:
		return iconSuccess
	case presenter.VisualErrorFlash:
		return iconError
	default:
		return iconIdle
	}
}
