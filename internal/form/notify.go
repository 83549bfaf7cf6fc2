package form

import (
	"context"
	"log/slog"
	"sync"
)

// NoticeKind distinguishes good news from bad news.
type NoticeKind string

const (
	Success NoticeKind = "success"
	Failure NoticeKind = "error"
)

// Notice is a short, transient message meant for the visitor.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Notifier receives the notices a form raises. How they are shown is up
// to the implementation.
type Notifier interface {
	Notify(kind NoticeKind, message string)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(kind NoticeKind, message string)

func (f NotifierFunc) Notify(kind NoticeKind, message string) { f(kind, message) }

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(NoticeKind, string) {})

// Collector keeps notices in order so they can be returned with an HTTP
// response.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

func (c *Collector) Notify(kind NoticeKind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, Notice{Kind: kind, Message: message})
}

// Notices returns a copy of everything collected so far. It never returns
// nil so the JSON encoding is always an array.
func (c *Collector) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// LogNotifier writes notices to a structured logger.
type LogNotifier struct {
	Log  *slog.Logger
	Form string
}

func (l LogNotifier) Notify(kind NoticeKind, message string) {
	log := l.Log
	if log == nil {
		log = slog.Default()
	}
	level := slog.LevelInfo
	if kind == Failure {
		level = slog.LevelWarn
	}
	log.Log(context.Background(), level, "form notice",
		slog.String("form", l.Form),
		slog.String("kind", string(kind)),
		slog.String("message", message))
}

// Multi fans a notice out to several notifiers. Nil entries are skipped.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(kind NoticeKind, message string) {
		for _, n := range notifiers {
			if n != nil {
				n.Notify(kind, message)
			}
		}
	})
}

type notifierKey struct{}

// ContextWithNotifier attaches a per-call notifier. A Wizard reports to it
// in addition to its own notifier, which lets one long-lived form answer
// many requests.
func ContextWithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierKey{}, n)
}

// NotifierFor combines base with the notifier attached to ctx, if any.
func NotifierFor(ctx context.Context, base Notifier) Notifier {
	extra, _ := ctx.Value(notifierKey{}).(Notifier)
	switch {
	case extra == nil && base == nil:
		return Discard
	case extra == nil:
		return base
	case base == nil:
		return extra
	}
	return Multi(base, extra)
}
