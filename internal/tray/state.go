// Package tray implements the indicator's system tray icon and menu.
package tray

// Actions is what the tray invokes in response to menu events.
type Actions interface {
	ToggleRecording()
	PasteLast()
	ShowApp()
	ShowSettings()
	CopyRecent(id string)
	Quit()
}
