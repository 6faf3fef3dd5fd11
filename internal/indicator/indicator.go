// Package indicator wires the change source, store, state machine,
// and meter into the running tray indicator.
package indicator

import (
	"log"
	"sync"

	"github.com/whispr-io/whisprtray/internal/action"
	"github.com/whispr-io/whisprtray/internal/click"
	"github.com/whispr-io/whisprtray/internal/config"
	"github.com/whispr-io/whisprtray/internal/meter"
	"github.com/whispr-io/whisprtray/internal/models"
	"github.com/whispr-io/whisprtray/internal/presenter"
	"github.com/whispr-io/whisprtray/internal/store"
	"github.com/whispr-io/whisprtray/internal/tray"
	"github.com/whispr-io/whisprtray/internal/watcher"
)

// View is the visual surface the indicator drives. *tray.UI satisfies
// it; tests substitute their own.
type View interface {
	ApplyFrame(frame presenter.Frame)
	SetMeter(bars []float64)
	SetTrayState(st models.TrayState)
}

// Indicator owns every timer and subscription of the running
// indicator. Start allocates them, Stop releases them; nothing
// outlives Stop.
type Indicator struct {
	settings *models.Settings
	store    *store.Store
	view     View
	runner   *action.Runner

	machine *presenter.Machine
	meter   *meter.Animator
	clicker *click.Disambiguator
	source  watcher.Source

	mu         sync.Mutex
	lastVisual presenter.Visual
	lastTray   models.TrayState
	done       chan struct{}
	wg         sync.WaitGroup
	started    bool
}

// New creates an indicator reading the default state directory.
func New(settings *models.Settings, view View, runner *action.Runner) *Indicator {
	ind := &Indicator{
		settings: settings,
		store:    store.New(config.RecordingFile(), config.TrayFile()),
		view:     view,
		runner:   runner,
	}

	ind.meter = meter.New(meter.Config{
		Tick:    settings.MeterTick(),
		Attack:  settings.Meter.Attack,
		Release: settings.Meter.Release,
	}, view.SetMeter)

	ind.machine = presenter.NewMachine(presenter.Config{
		Staleness:    settings.Staleness(),
		SuccessFlash: settings.SuccessFlash(),
		ErrorFlash:   settings.ErrorFlash(),
	}, nil, ind.applyFrame)

	// A lone press toggles recording; a double press opens the app.
	ind.clicker = click.New(settings.ClickWindow(), runner.Toggle, runner.Show)

	return ind
}

// Start loads both documents, opens the change source, and begins
// reacting to reloads.
func (ind *Indicator) Start() {
	ind.mu.Lock()
	if ind.started {
		ind.mu.Unlock()
		return
	}
	ind.started = true
	ind.done = make(chan struct{})
	ind.mu.Unlock()

	ind.source = watcher.Open(config.StateDir(), ind.settings.Debounce(), ind.settings.PollInterval())

	ind.reload(watcher.DocRecording)
	ind.reload(watcher.DocTray)

	ind.wg.Add(1)
	go ind.loop()
}

// Stop cancels every outstanding timer and detaches the change source
// before returning.
func (ind *Indicator) Stop() {
	ind.mu.Lock()
	if !ind.started {
		ind.mu.Unlock()
		return
	}
	ind.started = false
	close(ind.done)
	ind.mu.Unlock()

	ind.source.Stop()
	ind.wg.Wait()

	ind.machine.Stop()
	ind.meter.Stop()
	ind.clicker.Stop()
}

func (ind *Indicator) loop() {
	defer ind.wg.Done()

	for {
		select {
		case <-ind.done:
			return
		case ev, ok := <-ind.source.Events():
			if !ok {
				return
			}
			ind.reload(ev.Doc)
		}
	}
}

// reload re-reads one logical document and feeds it forward.
func (ind *Indicator) reload(doc watcher.Doc) {
	switch doc {
	case watcher.DocRecording:
		st := ind.store.Recording()
		ind.meter.SetTarget(st.Level)
		ind.machine.SetRecording(st)
	case watcher.DocTray:
		st := ind.store.Tray()
		ind.mu.Lock()
		ind.lastTray = st
		ind.mu.Unlock()
		ind.view.SetTrayState(st)
		ind.machine.SetTray(st)
	}
}

// applyFrame forwards machine frames to the view and starts or stops
// the meter on recording transitions.
func (ind *Indicator) applyFrame(frame presenter.Frame) {
	ind.mu.Lock()
	prev := ind.lastVisual
	ind.lastVisual = frame.Visual
	ind.mu.Unlock()

	ind.view.ApplyFrame(frame)

	recording := frame.Visual == presenter.VisualRecording
	wasRecording := prev == presenter.VisualRecording
	if recording && !wasRecording {
		ind.meter.Start()
	} else if !recording && wasRecording {
		ind.meter.Stop()
	}
}

// Menu actions (tray.Actions).

// ToggleRecording funnels the primary activation through the click
// disambiguator: a lone activation toggles, a double opens the app.
func (ind *Indicator) ToggleRecording() {
	ind.clicker.Press()
}

// PasteLast asks the recorder to paste the last transcript.
func (ind *Indicator) PasteLast() {
	ind.runner.PasteLast()
}

// ShowApp opens the recorder window.
func (ind *Indicator) ShowApp() {
	ind.runner.Show()
}

// ShowSettings opens the recorder's settings.
func (ind *Indicator) ShowSettings() {
	ind.runner.ShowSettings()
}

// CopyRecent copies a recent transcript to the clipboard.
func (ind *Indicator) CopyRecent(id string) {
	ind.mu.Lock()
	st := ind.lastTray
	ind.mu.Unlock()

	for _, transcript := range st.Recent {
		if transcript.ID == id {
			if err := action.Copy(transcript.Text); err != nil {
				log.Printf("[indicator] copy transcript %s: %v", id, err)
			}
			return
		}
	}
}

// Quit asks the recorder to exit and tears down the tray.
func (ind *Indicator) Quit() {
	ind.runner.Quit()
	tray.Quit()
}
