package submission

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/aanand-mishra/hackathon-api/internal/form"
	"github.com/aanand-mishra/hackathon-api/internal/types"
)

// memStore keeps submissions in insertion order and lists them newest
// first, like the real store.
type memStore struct {
	mu        sync.Mutex
	items     []types.Submission
	createErr error
	listErr   error
	lists     int
}

func (m *memStore) CreateSubmission(_ context.Context, s types.Submission) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return 0, m.createErr
	}
	s.ID = int64(len(m.items) + 1)
	m.items = append(m.items, s)
	return s.ID, nil
}

func (m *memStore) ListSubmissions(context.Context) ([]types.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]types.Submission, 0, len(m.items))
	for i := len(m.items) - 1; i >= 0; i-- {
		out = append(out, m.items[i])
	}
	return out, nil
}

var fixedNow = time.Date(2024, 12, 31, 18, 30, 0, 0, time.UTC)

func newForm(t *testing.T, store *memStore, notes form.Notifier) (*Form, *Board) {
	t.Helper()
	board := NewBoard(store, notes)
	f, err := NewForm(store, board, notes, func() time.Time { return fixedNow })
	require.NoError(t, err)
	return f, board
}

func fill(t *testing.T, f *Form, handle string) {
	t.Helper()
	require.NoError(t, f.Set(FieldProjectName, "Foo"))
	require.NoError(t, f.Set(FieldDescription, "A thing"))
	require.NoError(t, f.Set(FieldBuilderName, "Bob"))
	require.NoError(t, f.Set(FieldTwitterHandle, handle))
	require.NoError(t, f.Set(FieldProjectURL, "https://foo.dev"))
}

func TestNormalizeHandle(t *testing.T) {
	assert.Equal(t, "alice", NormalizeHandle("@alice"))
	assert.Equal(t, "bob_2", NormalizeHandle("bob_2"))
	assert.Equal(t, "", NormalizeHandle(""))
}

func TestForm_StoresNormalizedHandle(t *testing.T) {
	for input, want := range map[string]string{"@alice": "alice", "bob_2": "bob_2", "": ""} {
		store := &memStore{}
		f, _ := newForm(t, store, form.Discard)
		fill(t, f, input)

		require.NoError(t, f.Submit(context.Background()), "handle %q", input)
		require.Len(t, store.items, 1)
		assert.Equal(t, want, store.items[0].TwitterHandle)
		assert.Equal(t, fixedNow, store.items[0].SubmittedAt)
	}
}

func TestForm_RejectsInvalidHandle(t *testing.T) {
	store := &memStore{}
	notes := &form.Collector{}
	f, _ := newForm(t, store, notes)
	fill(t, f, "invalid handle!")

	err := f.Submit(context.Background())

	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{FieldTwitterHandle: "Please enter a valid Twitter handle"}, verr.Fields)
	assert.Empty(t, store.items)
	assert.Equal(t, []form.Notice{{Kind: form.Failure, Message: "Please fix the errors in the form"}}, notes.Notices())
}

func TestForm_WhitespaceOptionalFieldsFailInline(t *testing.T) {
	store := &memStore{}
	notes := &form.Collector{}
	f, _ := newForm(t, store, notes)
	fill(t, f, "   ")
	require.NoError(t, f.Set(FieldImageURL, "   "))

	err := f.Submit(context.Background())

	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		FieldTwitterHandle: "Please enter a valid Twitter handle",
		FieldImageURL:      "Please enter a valid image URL",
	}, verr.Fields)
	assert.Equal(t, verr.Fields, f.Errors())
	assert.Equal(t, form.Idle, f.State())
	assert.Empty(t, store.items)
	assert.Equal(t, []form.Notice{{Kind: form.Failure, Message: "Please fix the errors in the form"}}, notes.Notices())
}

func TestForm_RequiredFields(t *testing.T) {
	store := &memStore{}
	f, _ := newForm(t, store, form.Discard)

	err := f.Submit(context.Background())

	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		FieldProjectName: "Project name is required",
		FieldDescription: "Description is required",
		FieldBuilderName: "Builder name is required",
		FieldProjectURL:  "Project URL is required",
	}, verr.Fields)
	assert.Empty(t, store.items)
}

func TestForm_BadURLs(t *testing.T) {
	store := &memStore{}
	f, _ := newForm(t, store, form.Discard)
	fill(t, f, "")
	require.NoError(t, f.Set(FieldProjectURL, "not a url"))
	require.NoError(t, f.Set(FieldImageURL, "also not"))

	err := f.Submit(context.Background())

	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please enter a valid URL", verr.Fields[FieldProjectURL])
	assert.Equal(t, "Please enter a valid image URL", verr.Fields[FieldImageURL])
}

func TestForm_SuccessResetsAndRefreshes(t *testing.T) {
	store := &memStore{}
	notes := &form.Collector{}
	f, board := newForm(t, store, notes)
	fill(t, f, "@bob")

	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, int64(1), f.LastID())
	for name, v := range f.Values() {
		assert.Empty(t, v, "field %s should be reset", name)
	}
	assert.Equal(t, 1, store.lists)
	view := board.View("")
	require.Len(t, view.Submissions, 1)
	assert.Equal(t, "Foo", view.Submissions[0].ProjectName)

	assert.Equal(t, []form.Notice{
		{Kind: form.Success, Message: "Project submitted successfully!"},
		{Kind: form.Success, Message: "Submissions loaded successfully"},
	}, notes.Notices())
}

func TestForm_StoreFailureKeepsValues(t *testing.T) {
	store := &memStore{createErr: errors.New("permission denied for table submissions")}
	notes := &form.Collector{}
	f, _ := newForm(t, store, notes)
	fill(t, f, "")

	require.Error(t, f.Submit(context.Background()))

	assert.Equal(t, "Foo", f.Values()[FieldProjectName])
	assert.Equal(t, 0, store.lists)
	assert.Equal(t, []form.Notice{
		{Kind: form.Failure, Message: "Submission failed: permission denied for table submissions"},
	}, notes.Notices())
}

func seeded() []types.Submission {
	return []types.Submission{
		{ProjectName: "Foo", BuilderName: "Bob", Description: "x"},
		{ProjectName: "Bar", BuilderName: "Alice", Description: "y"},
	}
}

func TestFilter_MatchesBuilderCaseInsensitive(t *testing.T) {
	got := Filter(seeded(), "bob")
	require.Len(t, got, 1)
	assert.Equal(t, "Foo", got[0].ProjectName)
}

func TestFilter_AnyOfThreeFields(t *testing.T) {
	items := seeded()
	assert.Len(t, Filter(items, "BAR"), 1)
	assert.Len(t, Filter(items, "y"), 1)
	assert.Len(t, Filter(items, ""), 2)
	assert.Empty(t, Filter(items, "zzz"))
}

func TestBoard_EmptyStates(t *testing.T) {
	store := &memStore{}
	board := NewBoard(store, form.Discard)
	ctx := context.Background()

	require.NoError(t, board.Refresh(ctx))
	v := board.View("anything")
	assert.Equal(t, NoSubmissions, v.Empty)
	assert.NotNil(t, v.Submissions)

	store.items = seeded()
	require.NoError(t, board.Refresh(ctx))

	v = board.View("nobody")
	assert.Equal(t, NoMatches, v.Empty)
	assert.Equal(t, 2, v.Total)
	assert.Equal(t, 0, v.Matched)

	v = board.View("alice")
	assert.Equal(t, NotEmpty, v.Empty)
	assert.Equal(t, 1, v.Matched)
}

func TestBoard_RefreshFailureKeepsPreviousList(t *testing.T) {
	store := &memStore{items: seeded()}
	notes := &form.Collector{}
	board := NewBoard(store, notes)
	ctx := context.Background()
	require.NoError(t, board.Refresh(ctx))

	store.listErr = errors.New("timeout")
	require.Error(t, board.Refresh(ctx))

	assert.Equal(t, 2, board.View("").Total)
	assert.EqualError(t, board.Err(), "timeout")
	assert.False(t, board.Loading())
	got := notes.Notices()
	assert.Equal(t, form.Notice{Kind: form.Failure, Message: "Failed to load submissions: timeout"}, got[len(got)-1])
}

// blockingLister holds ListSubmissions open until released.
type blockingLister struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingLister) ListSubmissions(context.Context) ([]types.Submission, error) {
	close(b.entered)
	<-b.release
	return nil, nil
}

func TestBoard_LoadingWhilePending(t *testing.T) {
	lister := &blockingLister{entered: make(chan struct{}), release: make(chan struct{})}
	board := NewBoard(lister, form.Discard)

	done := make(chan error, 1)
	go func() { done <- board.Refresh(context.Background()) }()
	<-lister.entered

	assert.True(t, board.Loading())
	assert.True(t, board.View("").Loading)

	close(lister.release)
	require.NoError(t, <-done)
	assert.False(t, board.Loading())
}

func TestFilter_Properties(t *testing.T) {
	gen := rapid.Custom(func(t *rapid.T) types.Submission {
		return types.Submission{
			ProjectName: rapid.StringMatching(`[A-Za-z ]{0,8}`).Draw(t, "name"),
			BuilderName: rapid.StringMatching(`[A-Za-z ]{0,8}`).Draw(t, "builder"),
			Description: rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "desc"),
		}
	})

	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOf(gen).Draw(t, "items")
		term := rapid.StringMatching(`[A-Za-z]{0,3}`).Draw(t, "term")

		got := Filter(items, term)
		if len(got) > len(items) {
			t.Fatalf("filter grew the list")
		}

		// Every kept item matches; every dropped item does not.
		lower := strings.ToLower(term)
		matches := func(s types.Submission) bool {
			return strings.Contains(strings.ToLower(s.ProjectName), lower) ||
				strings.Contains(strings.ToLower(s.BuilderName), lower) ||
				strings.Contains(strings.ToLower(s.Description), lower)
		}
		want := 0
		for _, s := range items {
			if matches(s) {
				want++
			}
		}
		if want != len(got) {
			t.Fatalf("kept %d, want %d", len(got), want)
		}

		// Case of the term never matters.
		if len(Filter(items, strings.ToUpper(term))) != len(got) {
			t.Fatalf("upper-case term changed the result")
		}
	})
}
