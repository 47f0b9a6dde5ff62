package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
)

// Emitter accepts typed notifications. Sinks that only understand plain
// messages are still usable through Notify.
type Emitter interface {
	Emit(evt Notification)
}

// Notifier prints notices for one session to an output stream and mirrors
// them to the diagnostic log.
type Notifier struct {
	ctx context.Context
	out io.Writer
}

// NewNotifier binds a notifier to ctx; the session key is read from ctx.
// A nil out only logs.
func NewNotifier(ctx context.Context, out io.Writer) *Notifier {
	return &Notifier{ctx: ctx, out: out}
}

// Notify shows msg as an info notice.
func (n *Notifier) Notify(msg string) {
	n.Emit(NewInfo(msg))
}

func (n *Notifier) Emit(evt Notification) {
	if evt.SessionKey == "" {
		evt.SessionKey = SessionFromContext(n.ctx)
	}
	logNotification(evt)
	if n.out == nil {
		return
	}
	if evt.SessionKey != "" {
		fmt.Fprintf(n.out, "%s: %s\n", evt.SessionKey, evt.Message)
		return
	}
	fmt.Fprintln(n.out, evt.Message)
}

// Recorder keeps every notice it receives. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Notification
}

func (r *Recorder) Notify(msg string) {
	r.Emit(NewInfo(msg))
}

func (r *Recorder) Emit(evt Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

// Events returns a copy of the recorded notices.
func (r *Recorder) Events() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.events))
	copy(out, r.events)
	return out
}

// Messages returns the recorded notice texts in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Message)
	}
	return out
}

func logNotification(evt Notification) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("events: failed to marshal notification: %v", err)
		return
	}
	switch evt.Type {
	case EventError:
		log.Printf("ERROR %s", data)
	case EventWarn:
		log.Printf("WARN %s", data)
	default:
		log.Printf("INFO %s", data)
	}
}
