// Package notify is the outbound notification port. The engine emits
// fire-and-forget notifications through it; delivery is a collaborator
// concern and never affects control flow.
package notify

import (
	"context"
	"sync"

	"github.com/striderquest/StriderQuest_Go/internal/logger"
)

// Kind is the notification severity shown to the player
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Notifier delivers user-visible notifications. Implementations must not
// block the caller and must never return delivery state into game logic.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, title, description string)
}

// SlogNotifier logs notifications through the structured logger. It is the
// default sink when no UI collaborator is attached.
type SlogNotifier struct{}

// NewSlogNotifier creates the logging notification sink
func NewSlogNotifier() *SlogNotifier {
	return &SlogNotifier{}
}

func (n *SlogNotifier) Notify(ctx context.Context, kind Kind, title, description string) {
	log := logger.FromContext(ctx)
	switch kind {
	case KindError:
		log.Warn("Notification", "kind", kind, "title", title, "description", description)
	default:
		log.Info("Notification", "kind", kind, "title", title, "description", description)
	}
}

// Notification is one recorded notification, used by the Recorder
type Notification struct {
	Kind        Kind
	Title       string
	Description string
}

// Recorder captures notifications in memory for assertions in tests
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewRecorder creates an empty notification recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(_ context.Context, kind Kind, title, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, Notification{Kind: kind, Title: title, Description: description})
}

// All returns a copy of every recorded notification
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Count returns the number of recorded notifications with the given title
func (r *Recorder) Count(title string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, note := range r.notifications {
		if note.Title == title {
			n++
		}
	}
	return n
}

// Reset clears all recorded notifications
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}
