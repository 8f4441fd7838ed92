package downloadmgr

// EventKind is the type of an [Event]
type EventKind int

const (
	// EventDebug carries diagnostic messages
	EventDebug EventKind = iota
	// EventProgress is emitted at least once per written chunk
	EventProgress
	// EventError is emitted at most once per download and is always the last event
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventDebug:
		return "debug"
	case EventProgress:
		return "download-status"
	case EventError:
		return "error"
	}
	return "unknown"
}

// Status is the download progress of a resource
type Status struct {
	// Chunk is the number of bytes written by the last chunk
	Chunk int64
	// Received is the number of bytes received so far
	Received int64
	// Total is the expected size (from Content-Length) or -1 if unknown
	Total int64
}

// Percent returns the progress in percent, or -1 if the total is unknown
func (s Status) Percent() int {
	if s.Total <= 0 {
		return -1
	}
	return int(s.Received * 100 / s.Total)
}

// Event is something that happened while downloading a resource
type Event struct {
	Kind    EventKind
	Message string
	// Status is only set for EventProgress
	Status Status
	// Err is only set for EventError
	Err error
}

// EventHandler receives the events of one download in order. It may be nil.
type EventHandler func(e Event)

func (h EventHandler) debug(msg string) {
	if h != nil {
		h(Event{Kind: EventDebug, Message: msg})
	}
}

func (h EventHandler) progress(s Status) {
	if h != nil {
		h(Event{Kind: EventProgress, Status: s})
	}
}

func (h EventHandler) fail(err error) {
	if h != nil {
		h(Event{Kind: EventError, Message: err.Error(), Err: err})
	}
}
