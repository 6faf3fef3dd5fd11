// Package watcher observes the recorder's state directory for changes.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/whispr-io/whisprtray/internal/config"
)

// Doc identifies one of the two logical state documents.
type Doc int

// Logical documents.
const (
	DocRecording Doc = iota
	DocTray
)

func (d Doc) String() string {
	switch d {
	case DocRecording:
		return "recording"
	case DocTray:
		return "tray"
	default:
		return "unknown"
	}
}

// Event signals that a logical document should be reloaded.
type Event struct {
	Doc Doc
}

// Source is a running change source. Events delivers coalesced reload
// signals; Stop cancels all timers and detaches before returning.
type Source interface {
	Events() <-chan Event
	Stop()
}

// Open returns a running change source for the state directory.
// It prefers filesystem notifications; if the watch cannot be
// established it downgrades to fixed-interval polling for the rest of
// the process lifetime and never tries to re-establish the watch.
func Open(dir string, debounce, pollInterval time.Duration) Source {
	w, err := newNotifyWatcher(dir, debounce)
	if err != nil {
		log.Printf("[watcher] directory watch unavailable (%v), polling every %s", err, pollInterval)
		return newPoller(pollInterval)
	}
	return w
}

// notifyWatcher is the fsnotify-backed change source.
//
// The recorder writes atomically (write overlay.tmp, rename to
// overlay.json), so a burst may report the temp name, the final name,
// or both. Events for either name count toward the same document and
// a per-document debounce timer collapses the burst into one reload.
type notifyWatcher struct {
	fsWatcher  *fsnotify.Watcher
	debounce   time.Duration
	eventsChan chan Event
	done       chan struct{}

	debounceMu sync.Mutex
	timers     map[Doc]*time.Timer

	stopOnce sync.Once
}

func newNotifyWatcher(dir string, debounce time.Duration) (*notifyWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	w := &notifyWatcher{
		fsWatcher:  fsWatcher,
		debounce:   debounce,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		timers:     make(map[Doc]*time.Timer),
	}

	go w.processEvents()
	return w, nil
}

// Events returns the channel for receiving reload events.
func (w *notifyWatcher) Events() <-chan Event {
	return w.eventsChan
}

// Stop detaches the watch and cancels pending debounce timers.
func (w *notifyWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for doc, timer := range w.timers {
			timer.Stop()
			delete(w.timers, doc)
		}
		w.debounceMu.Unlock()
	})
}

func (w *notifyWatcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

func (w *notifyWatcher) handleEvent(event fsnotify.Event) {
	// Accept write, create, and rename events. Rename is critical:
	// atomic writes produce Rename events on the target file.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	doc, ok := docForName(filepath.Base(event.Name))
	if !ok {
		return
	}
	w.debounceDoc(doc)
}

// debounceDoc (re)arms the document's debounce timer. The two
// documents update at different rates, so each gets its own timer.
func (w *notifyWatcher) debounceDoc(doc Doc) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.timers[doc]; ok {
		timer.Stop()
	}

	w.timers[doc] = time.AfterFunc(w.debounce, func() {
		w.debounceMu.Lock()
		delete(w.timers, doc)
		w.debounceMu.Unlock()

		select {
		case w.eventsChan <- Event{Doc: doc}:
		case <-w.done:
		}
	})
}

// docForName maps a changed file name to its logical document. The
// final name, the recorder's extension-replaced temp name, and the
// appended .tmp form all match.
func docForName(name string) (Doc, bool) {
	switch name {
	case config.RecordingFileName,
		config.TempName(config.RecordingFileName),
		config.RecordingFileName + ".tmp":
		return DocRecording, true
	case config.TrayFileName,
		config.TempName(config.TrayFileName),
		config.TrayFileName + ".tmp":
		return DocTray, true
	default:
		return 0, false
	}
}
