package batch

import "time"

// Status captures progress of one slot.
type Status string

const (
	// StatusStarted is sent once when a worker picks up a slot.
	StatusStarted Status = "started"
	// StatusAttempt is sent before each pipeline run.
	StatusAttempt Status = "attempt"
	// StatusAccepted means the mutant passed validation and was stored.
	StatusAccepted Status = "accepted"
	// StatusRejected means the validator reported errors.
	StatusRejected Status = "rejected"
	// StatusFailed means the pipeline itself failed.
	StatusFailed Status = "failed"
)

// Event reports progress for a slot.
type Event struct {
	Slot    int
	Attempt int
	Status  Status
	// Final is set on the last event of a slot.
	Final bool
	// ID is the corpus entry ID of an accepted mutant, when stored.
	ID      string
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. OnEvent may be called from several
// goroutines at once.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
