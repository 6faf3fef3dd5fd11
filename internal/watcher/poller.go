package watcher

import (
	"sync"
	"time"
)

// poller is the fallback change source: it unconditionally signals a
// reload of both documents every interval. Loading a document is
// cheap and idempotent, so no change detection is attempted.
type poller struct {
	interval   time.Duration
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
}

func newPoller(interval time.Duration) *poller {
	p := &poller{
		interval:   interval,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
	}
	go p.loop()
	return p
}

// Events returns the channel for receiving reload events.
func (p *poller) Events() <-chan Event {
	return p.eventsChan
}

// Stop ends the poll loop.
func (p *poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
}

func (p *poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.emit(DocRecording)
			p.emit(DocTray)
		}
	}
}

func (p *poller) emit(doc Doc) {
	select {
	case p.eventsChan <- Event{Doc: doc}:
	case <-p.done:
	default:
		// A full channel means the consumer is behind on reloads
		// that would load identical state anyway. Drop.
	}
}
