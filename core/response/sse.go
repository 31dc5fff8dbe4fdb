package response

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultSSEKeepAlive is the default keep-alive interval for SSE connections.
const DefaultSSEKeepAlive = 30 * time.Second

type sseConfig struct {
	eventName   string
	eventID     string
	idGen       func(any) string
	reconnect   int
	keepAlive   time.Duration
	noKeepAlive bool
}

// EventOption configures Server-Sent Events behavior.
type EventOption func(*sseConfig)

// WithEventName sets the event name for SSE events.
func WithEventName(name string) EventOption {
	return func(s *sseConfig) {
		s.eventName = name
	}
}

// WithEventID sets a fixed event ID for all SSE events.
func WithEventID(id string) EventOption {
	return func(s *sseConfig) {
		s.eventID = id
	}
}

// WithEventIDGenerator derives each event ID from its data.
func WithEventIDGenerator(fn func(data any) string) EventOption {
	return func(s *sseConfig) {
		s.idGen = fn
	}
}

// WithReconnectTime sets the client reconnection time in milliseconds.
func WithReconnectTime(milliseconds int) EventOption {
	return func(s *sseConfig) {
		s.reconnect = milliseconds
	}
}

// WithKeepAlive sets the keep-alive interval.
func WithKeepAlive(interval time.Duration) EventOption {
	return func(s *sseConfig) {
		s.keepAlive = interval
	}
}

// WithoutKeepAlive disables keep-alive comments.
func WithoutKeepAlive() EventOption {
	return func(s *sseConfig) {
		s.noKeepAlive = true
	}
}

// SSE creates a Server-Sent Events response fed by events. Strings and byte
// slices are sent as-is, other values as JSON. The stream ends when events
// is closed or the client goes away, and every event is flushed as soon as
// it is written.
func SSE(events <-chan any, opts ...EventOption) *Response {
	cfg := sseConfig{keepAlive: DefaultSSEKeepAlive}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := New(Stream(newEventStream(events, cfg))).SetStatus(http.StatusOK)
	r.SetContentType("text/event-stream")
	r.SetHeader("Cache-Control", "no-cache")
	r.SetHeader("Connection", "keep-alive")
	r.SetHeader("X-Accel-Buffering", "no")
	r.flush = true
	return r
}

// eventStream turns a channel of values into the SSE wire format. Read
// blocks until an event, a keep-alive tick or Close.
type eventStream struct {
	events <-chan any
	cfg    sseConfig
	buf    bytes.Buffer
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func newEventStream(events <-chan any, cfg sseConfig) *eventStream {
	s := &eventStream{events: events, cfg: cfg, done: make(chan struct{})}
	s.buf.WriteString(": connected\n")
	if cfg.reconnect > 0 {
		s.buf.WriteString("retry: " + strconv.Itoa(cfg.reconnect) + "\n")
	}
	s.buf.WriteString("\n")
	if !cfg.noKeepAlive && cfg.keepAlive > 0 {
		s.ticker = time.NewTicker(cfg.keepAlive)
	}
	return s
}

func (s *eventStream) Read(p []byte) (int, error) {
	for s.buf.Len() == 0 {
		var tick <-chan time.Time
		if s.ticker != nil {
			tick = s.ticker.C
		}

		select {
		case <-s.done:
			return 0, io.EOF
		case <-tick:
			s.buf.WriteString(": keepalive\n\n")
		case data, ok := <-s.events:
			if !ok {
				return 0, io.EOF
			}
			if s.ticker != nil {
				s.ticker.Reset(s.cfg.keepAlive)
			}
			// values that fail to encode are dropped
			if frame, err := encodeEvent(data, s.cfg); err == nil {
				s.buf.Write(frame)
			}
		}
	}
	return s.buf.Read(p)
}

func (s *eventStream) Close() error {
	s.once.Do(func() {
		close(s.done)
		if s.ticker != nil {
			s.ticker.Stop()
		}
	})
	return nil
}

func encodeEvent(data any, cfg sseConfig) ([]byte, error) {
	var payload string
	switch v := data.(type) {
	case string:
		payload = v
	case []byte:
		payload = string(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		payload = string(b)
	}

	var b bytes.Buffer
	if cfg.eventName != "" {
		b.WriteString("event: " + cfg.eventName + "\n")
	}
	id := cfg.eventID
	if cfg.idGen != nil {
		id = cfg.idGen(data)
	}
	if id != "" {
		b.WriteString("id: " + id + "\n")
	}
	for _, line := range strings.Split(payload, "\n") {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return b.Bytes(), nil
}
