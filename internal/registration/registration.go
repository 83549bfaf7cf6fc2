// Package registration configures the three-step sign-up wizard and turns
// its values into a types.Registration for the store.
package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/aanand-mishra/hackathon-api/internal/form"
	"github.com/aanand-mishra/hackathon-api/internal/types"
)

// Field names, shared by the step definitions and the value map.
const (
	FieldFullName    = "full_name"
	FieldEmail       = "email"
	FieldProjectIdea = "project_idea"
	FieldTechStack   = "tech_stack"
	FieldTeamSize    = "team_size"
	FieldExperience  = "experience"
)

// Messages shown by the registration wizard.
var Messages = form.Messages{
	StepDone:     "Step completed successfully!",
	Invalid:      "Please fill in all required fields correctly",
	Submitted:    "Registration successful! Welcome to the World's Largest Hackathon!",
	FailedPrefix: "Registration failed",
}

// Steps returns the wizard definition. Each call builds fresh slices.
func Steps() []form.Step {
	return []form.Step{
		{
			Title: "Personal Info",
			Fields: []form.Field{
				{Name: FieldFullName, Label: "Full Name", Kind: form.Text,
					Placeholder: "Enter your full name", Required: true},
				{Name: FieldEmail, Label: "Email Address", Kind: form.Email,
					Placeholder: "Enter your email", Required: true},
			},
		},
		{
			Title: "Project Details",
			Fields: []form.Field{
				{Name: FieldProjectIdea, Label: "Project Idea", Kind: form.TextArea,
					Placeholder: "Describe your project idea", Required: true},
				{Name: FieldTechStack, Label: "Tech Stack", Kind: form.Text,
					Placeholder: "What technologies will you use?", Required: true},
			},
		},
		{
			Title: "Team Info",
			Fields: []form.Field{
				{Name: FieldTeamSize, Label: "Team Size", Kind: form.Select,
					Placeholder: "Select team size", Required: true,
					Choices: []form.Choice{
						{Value: types.TeamSolo, Label: "Solo (1 person)"},
						{Value: types.TeamSmall, Label: "Small team (2-4 people)"},
						{Value: types.TeamMedium, Label: "Medium team (5-10 people)"},
						{Value: types.TeamLarge, Label: "Large team (10+ people)"},
					}},
				{Name: FieldExperience, Label: "Experience Level", Kind: form.Select,
					Placeholder: "Select experience level", Required: true,
					Choices: []form.Choice{
						{Value: types.ExperienceBeginner, Label: "Beginner"},
						{Value: types.ExperienceIntermediate, Label: "Intermediate"},
						{Value: types.ExperienceAdvanced, Label: "Advanced"},
						{Value: types.ExperienceMixed, Label: "Mixed levels"},
					}},
			},
		},
	}
}

// Creator is the part of storage.Storage the wizard needs.
type Creator interface {
	CreateRegistration(ctx context.Context, r types.Registration) (int64, error)
}

// Record maps wizard values onto a registration stamped with now.
func Record(values map[string]string, now time.Time) types.Registration {
	return types.Registration{
		FullName:     values[FieldFullName],
		Email:        values[FieldEmail],
		ProjectIdea:  values[FieldProjectIdea],
		TechStack:    values[FieldTechStack],
		TeamSize:     values[FieldTeamSize],
		Experience:   values[FieldExperience],
		RegisteredAt: now,
	}
}

// NewWizard returns a registration wizard that writes to store on its
// final step. now may be nil, in which case time.Now is used.
func NewWizard(store Creator, notifier form.Notifier, now func() time.Time) (*form.Wizard, error) {
	if now == nil {
		now = time.Now
	}

	submit := func(ctx context.Context, values map[string]string) error {
		record := Record(values, now())
		if err := form.CheckRecord(record); err != nil {
			return fmt.Errorf("registration rejected: %w", err)
		}
		if _, err := store.CreateRegistration(ctx, record); err != nil {
			return err
		}
		return nil
	}

	return form.NewWizard(Steps(), submit,
		form.WithNotifier(notifier),
		form.WithMessages(Messages),
	)
}

// capture remembers the id of the last registration it stored.
type capture struct {
	Creator
	id int64
}

func (c *capture) CreateRegistration(ctx context.Context, r types.Registration) (int64, error) {
	id, err := c.Creator.CreateRegistration(ctx, r)
	if err == nil {
		c.id = id
	}
	return id, err
}

// Register runs the whole wizard in one call: every value is set, every
// step validated in order, then the record is stored. The returned wizard
// is parked on the first failing step when validation fails.
func Register(ctx context.Context, store Creator, notifier form.Notifier, values map[string]string) (int64, *form.Wizard, error) {
	c := &capture{Creator: store}

	w, err := NewWizard(c, notifier, nil)
	if err != nil {
		return 0, nil, err
	}

	for name, value := range values {
		if err := w.Set(name, value); err != nil {
			return 0, w, err
		}
	}

	if err := w.Complete(ctx); err != nil {
		return 0, w, err
	}
	return c.id, w, nil
}
