package submission

import (
	"context"
	"strings"
	"sync"

	"github.com/aanand-mishra/hackathon-api/internal/form"
	"github.com/aanand-mishra/hackathon-api/internal/types"
)

// Lister is the read half of storage.Storage.
type Lister interface {
	ListSubmissions(ctx context.Context) ([]types.Submission, error)
}

// EmptyState explains an empty result.
type EmptyState string

const (
	// NotEmpty means at least one submission is shown.
	NotEmpty EmptyState = ""
	// NoSubmissions means nothing has been submitted yet.
	NoSubmissions EmptyState = "none"
	// NoMatches means submissions exist but none match the search term.
	NoMatches EmptyState = "no_match"
)

// Board holds the fetched submissions, newest first, and answers searches
// over them without going back to the store.
type Board struct {
	mu       sync.Mutex
	store    Lister
	notifier form.Notifier
	items    []types.Submission
	loading  bool
	err      error
}

func NewBoard(store Lister, notifier form.Notifier) *Board {
	return &Board{store: store, notifier: notifier, items: make([]types.Submission, 0)}
}

// Refresh refetches the list. While the fetch is pending Loading reports
// true. On failure the previous list is kept and the error is both
// returned and announced.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.loading = true
	b.mu.Unlock()

	items, err := b.store.ListSubmissions(ctx)

	b.mu.Lock()
	b.loading = false
	b.err = err
	if err == nil {
		if items == nil {
			items = make([]types.Submission, 0)
		}
		b.items = items
	}
	b.mu.Unlock()

	n := form.NotifierFor(ctx, b.notifier)
	if err != nil {
		n.Notify(form.Failure, "Failed to load submissions: "+err.Error())
		return err
	}
	n.Notify(form.Success, "Submissions loaded successfully")
	return nil
}

// Loading reports whether a Refresh is in flight.
func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Err is the error of the last Refresh, nil if it succeeded.
func (b *Board) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// View is what a gallery page renders for one search term.
type View struct {
	Submissions []types.Submission `json:"submissions"`
	Term        string             `json:"term,omitempty"`
	Total       int                `json:"total"`
	Matched     int                `json:"matched"`
	Loading     bool               `json:"loading"`
	Empty       EmptyState         `json:"empty,omitempty"`
}

// View filters the current list by term.
func (b *Board) View(term string) View {
	b.mu.Lock()
	defer b.mu.Unlock()

	matched := Filter(b.items, term)
	v := View{
		Submissions: matched,
		Term:        term,
		Total:       len(b.items),
		Matched:     len(matched),
		Loading:     b.loading,
	}

	switch {
	case len(matched) > 0:
		v.Empty = NotEmpty
	case len(b.items) == 0:
		v.Empty = NoSubmissions
	default:
		v.Empty = NoMatches
	}

	return v
}

// Filter keeps the submissions whose project name, builder name or
// description contains term, ignoring case. An empty term keeps all.
// Order is preserved and the input is not modified.
func Filter(items []types.Submission, term string) []types.Submission {
	out := make([]types.Submission, 0, len(items))
	needle := strings.ToLower(term)
	for _, s := range items {
		if needle == "" ||
			strings.Contains(strings.ToLower(s.ProjectName), needle) ||
			strings.Contains(strings.ToLower(s.BuilderName), needle) ||
			strings.Contains(strings.ToLower(s.Description), needle) {
			out = append(out, s)
		}
	}
	return out
}
