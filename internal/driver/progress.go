package driver

import "time"

// Status captures the state of one file in a run.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates a worker is linting the file.
	StatusWorking Status = "working"
	// StatusDone indicates the file was linted.
	StatusDone Status = "done"
	// StatusCached indicates the result was replayed from the cache.
	StatusCached Status = "cached"
	// StatusSkipped indicates the file was excluded or could not be read.
	StatusSkipped Status = "skipped"
)

// Event reports progress for a file, or for the whole run when File is
// empty.
type Event struct {
	File    string
	Status  Status
	Errors  int
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
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

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
