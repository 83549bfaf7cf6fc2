package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/hackathon-api/internal/form"
	"github.com/aanand-mishra/hackathon-api/internal/types"
)

type fakeStore struct {
	saved []types.Registration
	err   error
}

func (f *fakeStore) CreateRegistration(_ context.Context, r types.Registration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, r)
	return int64(len(f.saved)), nil
}

var fixedNow = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

func walkToEnd(t *testing.T, w *form.Wizard) {
	t.Helper()
	ctx := context.Background()
	for name, v := range map[string]string{
		FieldFullName:    "Grace Hopper",
		FieldEmail:       "grace@example.com",
		FieldProjectIdea: "Compiler",
		FieldTechStack:   "COBOL",
		FieldTeamSize:    types.TeamSolo,
		FieldExperience:  types.ExperienceAdvanced,
	} {
		require.NoError(t, w.Set(name, v))
	}
	require.NoError(t, w.Advance(ctx))
	require.NoError(t, w.Advance(ctx))
	require.Equal(t, 2, w.Step())
}

func TestSteps_Shape(t *testing.T) {
	steps := Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, "Personal Info", steps[0].Title)
	assert.Equal(t, "Project Details", steps[1].Title)
	assert.Equal(t, "Team Info", steps[2].Title)

	for _, step := range steps {
		for _, f := range step.Fields {
			assert.True(t, f.Required, "%s should be required", f.Name)
		}
	}
	assert.Len(t, steps[2].Fields[0].Choices, 4)
	assert.Len(t, steps[2].Fields[1].Choices, 4)
}

func TestWizard_SubmitPersistsRecord(t *testing.T) {
	store := &fakeStore{}
	notes := &form.Collector{}
	w, err := NewWizard(store, notes, func() time.Time { return fixedNow })
	require.NoError(t, err)
	walkToEnd(t, w)

	require.NoError(t, w.Submit(context.Background()))

	require.Len(t, store.saved, 1)
	assert.Equal(t, types.Registration{
		FullName:     "Grace Hopper",
		Email:        "grace@example.com",
		ProjectIdea:  "Compiler",
		TechStack:    "COBOL",
		TeamSize:     "1",
		Experience:   "advanced",
		RegisteredAt: fixedNow,
	}, store.saved[0])
	assert.Equal(t, 0, w.Step())

	got := notes.Notices()
	assert.Equal(t, form.Notice{Kind: form.Success, Message: Messages.Submitted}, got[len(got)-1])
}

func TestWizard_StoreErrorSurfacesMessage(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	notes := &form.Collector{}
	w, err := NewWizard(store, notes, nil)
	require.NoError(t, err)
	walkToEnd(t, w)

	require.Error(t, w.Submit(context.Background()))

	got := notes.Notices()
	assert.Equal(t, form.Notice{Kind: form.Failure, Message: "Registration failed: connection refused"}, got[len(got)-1])
	assert.Equal(t, "Grace Hopper", w.Value(FieldFullName))
	assert.Equal(t, 2, w.Step())
}

func TestSessions_StartAndGet(t *testing.T) {
	s := NewSessions(&fakeStore{}, form.Discard, time.Minute, time.Minute)

	id, w, err := s.Start()
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Same(t, w, got)
	assert.Equal(t, 1, s.Len())

	_, err = s.Get("missing")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessions_Expire(t *testing.T) {
	s := NewSessions(&fakeStore{}, form.Discard, 20*time.Millisecond, time.Hour)

	id, _, err := s.Start()
	require.NoError(t, err)

	// Polling with Get would keep the session alive, so wait it out.
	time.Sleep(60 * time.Millisecond)

	_, err = s.Get(id)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessions_AreIndependent(t *testing.T) {
	s := NewSessions(&fakeStore{}, form.Discard, time.Minute, time.Minute)

	_, a, err := s.Start()
	require.NoError(t, err)
	_, b, err := s.Start()
	require.NoError(t, err)

	require.NoError(t, a.Set(FieldFullName, "A"))
	assert.Empty(t, b.Value(FieldFullName))
}

func TestRegister_OneShot(t *testing.T) {
	store := &fakeStore{}
	notes := &form.Collector{}

	id, w, err := Register(context.Background(), store, notes, map[string]string{
		FieldFullName:    "Ada Lovelace",
		FieldEmail:       "ada@example.com",
		FieldProjectIdea: "Engine",
		FieldTechStack:   "Brass",
		FieldTeamSize:    types.TeamSmall,
		FieldExperience:  types.ExperienceMixed,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 0, w.Step())
	require.Len(t, store.saved, 1)
	assert.Equal(t, "ada@example.com", store.saved[0].Email)
	assert.Equal(t, []form.Notice{{Kind: form.Success, Message: Messages.Submitted}}, notes.Notices())
}

func TestRegister_ParksOnFirstInvalidStep(t *testing.T) {
	store := &fakeStore{}

	_, w, err := Register(context.Background(), store, nil, map[string]string{
		FieldFullName: "Ada Lovelace",
		FieldEmail:    "ada@example.com",
	})

	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, FieldProjectIdea)
	assert.Equal(t, 1, w.Step())
	assert.Empty(t, store.saved)
}

func TestRegister_UnknownField(t *testing.T) {
	_, _, err := Register(context.Background(), &fakeStore{}, nil, map[string]string{"nickname": "x"})
	require.ErrorIs(t, err, form.ErrUnknownField)
}
