// Package submission implements the project gallery: a single-step form
// that posts a project, and a Board that lists and searches what has been
// posted.
package submission

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aanand-mishra/hackathon-api/internal/form"
	"github.com/aanand-mishra/hackathon-api/internal/types"
)

const (
	FieldProjectName   = "project_name"
	FieldDescription   = "description"
	FieldBuilderName   = "builder_name"
	FieldTwitterHandle = "twitter_handle"
	FieldProjectURL    = "project_url"
	FieldImageURL      = "image_url"
)

var Messages = form.Messages{
	Invalid:      "Please fix the errors in the form",
	Submitted:    "Project submitted successfully!",
	FailedPrefix: "Submission failed",
}

// Fields returns the submission form definition.
func Fields() []form.Field {
	return []form.Field{
		{Name: FieldProjectName, Label: "Project name", Kind: form.Text, Required: true},
		{Name: FieldDescription, Label: "Description", Kind: form.TextArea, Required: true},
		{Name: FieldBuilderName, Label: "Builder name", Kind: form.Text, Required: true},
		{Name: FieldTwitterHandle, Label: "Twitter handle", Kind: form.Text,
			Placeholder: "@handle", Rules: "handle",
			Message: "Please enter a valid Twitter handle"},
		{Name: FieldProjectURL, Label: "Project URL", Kind: form.Text, Required: true,
			Rules: "weburl", Message: "Please enter a valid URL"},
		{Name: FieldImageURL, Label: "Image URL", Kind: form.Text,
			Rules: "weburl", Message: "Please enter a valid image URL"},
	}
}

// NormalizeHandle drops one leading "@".
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(handle, "@")
}

// Record maps form values onto a submission stamped with now.
func Record(values map[string]string, now time.Time) types.Submission {
	return types.Submission{
		ProjectName:   values[FieldProjectName],
		Description:   values[FieldDescription],
		BuilderName:   values[FieldBuilderName],
		TwitterHandle: NormalizeHandle(values[FieldTwitterHandle]),
		ProjectURL:    values[FieldProjectURL],
		ImageURL:      values[FieldImageURL],
		SubmittedAt:   now,
	}
}

// Creator is the write half of storage.Storage.
type Creator interface {
	CreateSubmission(ctx context.Context, s types.Submission) (int64, error)
}

// Form is the submission form. After a successful submit it refreshes the
// board so the new project shows up.
type Form struct {
	wizard *form.Wizard
	board  *Board
	lastID atomic.Int64
}

// NewForm builds a form that writes to store and refreshes board on
// success. board may be nil. now may be nil, in which case time.Now is used.
func NewForm(store Creator, board *Board, notifier form.Notifier, now func() time.Time) (*Form, error) {
	if now == nil {
		now = time.Now
	}

	f := &Form{board: board}

	submit := func(ctx context.Context, values map[string]string) error {
		record := Record(values, now())
		if err := form.CheckRecord(record); err != nil {
			return fmt.Errorf("submission rejected: %w", err)
		}
		id, err := store.CreateSubmission(ctx, record)
		if err != nil {
			return err
		}
		f.lastID.Store(id)
		return nil
	}

	w, err := form.NewWizard([]form.Step{{Title: "Submit your project", Fields: Fields()}}, submit,
		form.WithNotifier(notifier),
		form.WithMessages(Messages),
	)
	if err != nil {
		return nil, err
	}
	f.wizard = w

	return f, nil
}

func (f *Form) Set(name, value string) error { return f.wizard.Set(name, value) }

func (f *Form) Values() map[string]string { return f.wizard.Values() }

func (f *Form) Errors() map[string]string { return f.wizard.Errors() }

func (f *Form) State() form.State { return f.wizard.State() }

// LastID is the store id of the most recent successful submit.
func (f *Form) LastID() int64 { return f.lastID.Load() }

// Submit validates and stores the project. On success the form is cleared
// and the board refreshed; a failed refresh does not undo the submit.
func (f *Form) Submit(ctx context.Context) error {
	if err := f.wizard.Submit(ctx); err != nil {
		return err
	}
	if f.board != nil {
		f.board.Refresh(ctx)
	}
	return nil
}
