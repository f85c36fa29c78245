// Package notify carries user-facing toast messages from the core to the UI.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one toast.
type Notification struct {
	ID    uuid.UUID `json:"id"`
	Level Level     `json:"level"`
	Title string    `json:"title"`
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}

// Notifier receives toasts. Implementations must be safe for concurrent use
// and must not block.
type Notifier interface {
	Notify(n Notification)
}

// New stamps a notification with an id and the current time.
func New(level Level, title, text string) Notification {
	return Notification{
		ID:    uuid.New(),
		Level: level,
		Title: title,
		Text:  text,
		At:    time.Now(),
	}
}

// Info, Success and Error are shorthands that build and deliver in one call.
func Info(n Notifier, title, text string) {
	send(n, New(LevelInfo, title, text))
}

func Success(n Notifier, title, text string) {
	send(n, New(LevelSuccess, title, text))
}

func Error(n Notifier, title, text string) {
	send(n, New(LevelError, title, text))
}

func send(n Notifier, msg Notification) {
	if n != nil {
		n.Notify(msg)
	}
}

// Nop drops everything.
type Nop struct{}

func (Nop) Notify(Notification) {}

// Logger writes notifications to a structured logger.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger notifier.
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger.With("component", "notify")}
}

func (l *Logger) Notify(n Notification) {
	lvl := slog.LevelInfo
	if n.Level == LevelError {
		lvl = slog.LevelWarn
	}
	l.logger.Log(context.Background(), lvl, n.Title, "text", n.Text, "id", n.ID)
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, target := range m {
		send(target, n)
	}
}

// Feed keeps the most recent notifications in memory for polling clients.
type Feed struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

// NewFeed creates a feed holding at most limit entries.
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 50
	}
	return &Feed{limit: limit}
}

func (f *Feed) Notify(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if over := len(f.items) - f.limit; over > 0 {
		f.items = append([]Notification(nil), f.items[over:]...)
	}
}

// Recent returns the buffered notifications, oldest first.
func (f *Feed) Recent() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification(nil), f.items...)
}

// Since returns the notifications newer than t.
func (f *Feed) Since(t time.Time) []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Notification
	for _, n := range f.items {
		if n.At.After(t) {
			out = append(out, n)
		}
	}
	return out
}
