package tray

import (
	"strings"
	"sync"

	"github.com/getlantern/systray"

	"github.com/whispr-io/whisprtray/internal/models"
	"github.com/whispr-io/whisprtray/internal/presenter"
)

const maxRecentSlots = 8

const previewLen = 40

// meterGlyphs maps bar heights to block characters (lowest first).
const meterGlyphs = "▁▂▃▄▅▆▇█"

// UI owns the tray icon, title, tooltip, and menu items.
type UI struct {
	actions Actions

	toggleItem   *systray.MenuItem
	pasteItem    *systray.MenuItem
	recentsItem  *systray.MenuItem
	settingsItem *systray.MenuItem
	openItem     *systray.MenuItem
	quitItem     *systray.MenuItem

	// Pre-allocated recent-transcript slots (hidden by default)
	recentSlots   [maxRecentSlots]*systray.MenuItem
	noRecentsItem *systray.MenuItem

	// Maps slot index → transcript ID for copy actions
	slotMu  sync.RWMutex
	slotIDs [maxRecentSlots]string

	// Last-applied presentation, recombined on every update
	stateMu sync.Mutex
	visual  presenter.Visual
	clock   string
	bars    string
	hotkeys map[string]string

	done chan struct{}
}

// Run starts the system tray. This blocks the calling goroutine (must
// be main). onStart is called with the built UI once the tray is
// ready; onExit is called when the tray exits.
func Run(actions Actions, onStart func(*UI), onExit func()) {
	u := &UI{
		actions: actions,
		done:    make(chan struct{}),
	}

	systray.Run(
		func() {
			u.onReady()
			if onStart != nil {
				onStart(u)
			}
		},
		func() {
			close(u.done)
			if onExit != nil {
				onExit()
			}
		},
	)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func (u *UI) onReady() {
	systray.SetIcon(iconIdle)
	systray.SetTooltip("Whispr")

	u.toggleItem = systray.AddMenuItem("Start Recording", "Toggle recording")
	u.pasteItem = systray.AddMenuItem("Paste Last Transcript", "")
	u.pasteItem.Disable()

	u.recentsItem = systray.AddMenuItem("Recent Transcriptions", "")
	for i := 0; i < maxRecentSlots; i++ {
		u.recentSlots[i] = u.recentsItem.AddSubMenuItem("", "Copy to clipboard")
		u.recentSlots[i].Hide()
	}
	u.noRecentsItem = u.recentsItem.AddSubMenuItem("No transcripts yet", "")
	u.noRecentsItem.Disable()

	systray.AddSeparator()

	u.settingsItem = systray.AddMenuItem("Settings", "Open Whispr settings")
	u.openItem = systray.AddMenuItem("Open Whispr", "Open the Whispr window")

	systray.AddSeparator()

	u.quitItem = systray.AddMenuItem("Quit Whispr", "Quit recorder and indicator")

	go u.handleClicks()
}

func (u *UI) handleClicks() {
	for {
		select {
		case <-u.done:
			return

		case <-u.toggleItem.ClickedCh:
			u.actions.ToggleRecording()
		case <-u.pasteItem.ClickedCh:
			u.actions.PasteLast()
		case <-u.settingsItem.ClickedCh:
			u.actions.ShowSettings()
		case <-u.openItem.ClickedCh:
			u.actions.ShowApp()
		case <-u.quitItem.ClickedCh:
			u.actions.Quit()

		// Recent slot clicks
		case <-u.recentSlots[0].ClickedCh:
			u.copyRecentAtSlot(0)
		case <-u.recentSlots[1].ClickedCh:
			u.copyRecentAtSlot(1)
		case <-u.recentSlots[2].ClickedCh:
			u.copyRecentAtSlot(2)
		case <-u.recentSlots[3].ClickedCh:
			u.copyRecentAtSlot(3)
		case <-u.recentSlots[4].ClickedCh:
			u.copyRecentAtSlot(4)
		case <-u.recentSlots[5].ClickedCh:
			u.copyRecentAtSlot(5)
		case <-u.recentSlots[6].ClickedCh:
			u.copyRecentAtSlot(6)
		case <-u.recentSlots[7].ClickedCh:
			u.copyRecentAtSlot(7)
		}
	}
}

func (u *UI) copyRecentAtSlot(slot int) {
	u.slotMu.RLock()
	id := u.slotIDs[slot]
	u.slotMu.RUnlock()

	if id == "" {
		return
	}
	u.actions.CopyRecent(id)
}

// ApplyFrame updates the icon, tooltip, toggle item, and title for a
// presentation frame.
func (u *UI) ApplyFrame(frame presenter.Frame) {
	u.stateMu.Lock()
	u.visual = frame.Visual
	u.clock = frame.Clock
	if frame.Visual != presenter.VisualRecording {
		u.bars = ""
	}
	toggleTitle := u.toggleTitleLocked()
	tooltip := tooltipFor(frame)
	title := u.titleLocked()
	u.stateMu.Unlock()

	systray.SetIcon(iconFor(frame.Visual))
	systray.SetTooltip(tooltip)
	systray.SetTitle(title)
	u.toggleItem.SetTitle(toggleTitle)
}

// SetMeter updates the level meter portion of the tray title.
func (u *UI) SetMeter(bars []float64) {
	u.stateMu.Lock()
	if u.visual == presenter.VisualRecording {
		u.bars = renderBars(bars)
	}
	title := u.titleLocked()
	u.stateMu.Unlock()

	systray.SetTitle(title)
}

// SetTrayState refreshes the menu from a loaded tray document.
func (u *UI) SetTrayState(st models.TrayState) {
	u.stateMu.Lock()
	u.hotkeys = st.Hotkeys
	toggleTitle := u.toggleTitleLocked()
	u.stateMu.Unlock()

	u.toggleItem.SetTitle(toggleTitle)

	pasteTitle := withHotkey("Paste Last Transcript", st.Hotkey(models.HotkeyPasteLast))
	u.pasteItem.SetTitle(pasteTitle)
	if len(st.Recent) == 0 {
		u.pasteItem.Disable()
	} else {
		u.pasteItem.Enable()
	}

	u.openItem.SetTitle(withHotkey("Open Whispr", st.Hotkey(models.HotkeyOpenApp)))

	u.updateRecents(st.Recent)
}

func (u *UI) updateRecents(recent []models.Transcript) {
	u.slotMu.Lock()
	for i := range u.slotIDs {
		u.slotIDs[i] = ""
	}
	for i, transcript := range recent {
		if i >= maxRecentSlots {
			break
		}
		u.slotIDs[i] = transcript.ID
	}
	u.slotMu.Unlock()

	for i := 0; i < maxRecentSlots; i++ {
		u.recentSlots[i].Hide()
	}

	if len(recent) == 0 {
		u.noRecentsItem.Show()
		return
	}

	u.noRecentsItem.Hide()
	for i, transcript := range recent {
		if i >= maxRecentSlots {
			break
		}
		u.recentSlots[i].SetTitle(previewText(transcript))
		u.recentSlots[i].Show()
	}
}

func (u *UI) toggleTitleLocked() string {
	title := "Start Recording"
	if u.visual == presenter.VisualRecording {
		title = "Stop Recording"
	}
	return withHotkey(title, u.hotkeys[models.HotkeyRecordToggle])
}

// titleLocked combines meter bars and clock into the tray title.
func (u *UI) titleLocked() string {
	if u.visual != presenter.VisualRecording {
		return ""
	}
	return strings.TrimSpace(u.bars + " " + u.clock)
}

func tooltipFor(frame presenter.Frame) string {
	switch frame.Visual {
	case presenter.VisualRecording:
		return "Whispr — Recording"
	case presenter.VisualErrorFlash:
		if frame.Error != "" {
			return "Whispr — " + frame.Error
		}
		return "Whispr — Error"
	case presenter.VisualSuccessFlash:
		return "Whispr — Transcribed"
	default:
		return "Whispr"
	}
}

func withHotkey(title, hotkey string) string {
	if hotkey == "" {
		return title
	}
	return title + " (" + hotkey + ")"
}

// renderBars maps bar heights in [0,1] to block glyphs.
func renderBars(bars []float64) string {
	glyphs := []rune(meterGlyphs)

	var sb strings.Builder
	for _, h := range bars {
		if h < 0 {
			h = 0
		} else if h > 1 {
			h = 1
		}
		idx := int(h * float64(len(glyphs)-1))
		sb.WriteRune(glyphs[idx])
	}
	return sb.String()
}

// previewText returns the menu label for a transcript: the writer's
// preview when present, else a collapsed prefix of the text.
func previewText(t models.Transcript) string {
	if t.Preview != "" {
		return t.Preview
	}

	collapsed := strings.Join(strings.Fields(t.Text), " ")
	if collapsed == "" {
		return "Empty transcript"
	}

	runes := []rune(collapsed)
	if len(runes) <= previewLen {
		return collapsed
	}
	return string(runes[:previewLen]) + "..."
}
