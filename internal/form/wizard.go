package form

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrBusy is returned when a submit is attempted while another one on
	// the same form has not finished.
	ErrBusy = errors.New("form is already submitting")

	// ErrUnknownField is returned by Set for a name no step declares.
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError lists the fields that failed, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// State is where a form sits in its submit cycle.
type State int

const (
	Idle State = iota
	Validating
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SubmitFunc persists the accumulated values. The map is a copy owned by
// the callee. A returned error is shown to the visitor verbatim.
type SubmitFunc func(ctx context.Context, values map[string]string) error

// Messages are the notice texts a Wizard raises.
type Messages struct {
	StepDone  string
	Invalid   string
	Submitted string
	// FailedPrefix is followed by ": " and the store's error message.
	FailedPrefix string
}

// DefaultMessages are the registration wizard texts.
var DefaultMessages = Messages{
	StepDone:     "Step completed successfully!",
	Invalid:      "Please fill in all required fields correctly",
	Submitted:    "Submitted successfully!",
	FailedPrefix: "Submission failed",
}

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithNotifier sets the notifier that hears every notice of the wizard.
func WithNotifier(n Notifier) WizardOption {
	return func(w *Wizard) { w.notifier = n }
}

// WithMessages overrides the notice texts. Empty entries keep the default.
func WithMessages(m Messages) WizardOption {
	return func(w *Wizard) {
		if m.StepDone != "" {
			w.msgs.StepDone = m.StepDone
		}
		if m.Invalid != "" {
			w.msgs.Invalid = m.Invalid
		}
		if m.Submitted != "" {
			w.msgs.Submitted = m.Submitted
		}
		if m.FailedPrefix != "" {
			w.msgs.FailedPrefix = m.FailedPrefix
		}
	}
}

// Wizard walks a visitor through a fixed sequence of steps. Only the
// fields of the current step are validated when moving forward; the
// values of every step are kept in one flat map and submitted together.
//
// All methods are safe for concurrent use. The submit callback runs
// without holding the lock, so Snapshot and Set stay responsive while the
// store is slow.
type Wizard struct {
	mu       sync.Mutex
	steps    []Step
	fields   map[string]Field
	current  int
	values   map[string]string
	errors   map[string]string
	state    State
	submit   SubmitFunc
	notifier Notifier
	msgs     Messages
}

// NewWizard builds a wizard over steps. Field names must be unique across
// all steps.
func NewWizard(steps []Step, submit SubmitFunc, opts ...WizardOption) (*Wizard, error) {
	if len(steps) == 0 {
		return nil, errors.New("form.NewWizard: at least one step is required")
	}
	if submit == nil {
		return nil, errors.New("form.NewWizard: submit func is nil")
	}

	w := &Wizard{
		steps:    steps,
		fields:   make(map[string]Field),
		values:   make(map[string]string),
		errors:   make(map[string]string),
		submit:   submit,
		notifier: Discard,
		msgs:     DefaultMessages,
	}

	for _, step := range steps {
		for _, f := range step.Fields {
			if _, dup := w.fields[f.Name]; dup {
				return nil, fmt.Errorf("form.NewWizard: duplicate field %q", f.Name)
			}
			w.fields[f.Name] = f
			w.values[f.Name] = ""
		}
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Steps returns the step descriptors.
func (w *Wizard) Steps() []Step {
	return w.steps
}

// Step returns the 0-based index of the current step.
func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// State reports where the wizard is in its submit cycle.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Value returns the current value of a field.
func (w *Wizard) Value(name string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.values[name]
}

// Values returns a copy of every field value.
func (w *Wizard) Values() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyMap(w.values)
}

// Errors returns a copy of the current non-empty field errors.
func (w *Wizard) Errors() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyMap(w.errors)
}

// Set stores a value and drops any error shown for that field, without
// re-validating anything. It returns ErrBusy while a submit is in flight.
func (w *Wizard) Set(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == Submitting {
		return ErrBusy
	}
	if _, ok := w.fields[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	w.values[name] = value
	delete(w.errors, name)
	return nil
}

// Retreat moves back one step. It never validates and does nothing on the
// first step. It returns ErrBusy while a submit is in flight.
func (w *Wizard) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == Submitting {
		return ErrBusy
	}
	if w.current > 0 {
		w.current--
	}
	return nil
}

// Advance validates the current step and moves to the next one. On the
// last step a valid Advance submits, exactly like Submit.
func (w *Wizard) Advance(ctx context.Context) error {
	w.mu.Lock()
	if w.state == Submitting {
		w.mu.Unlock()
		return ErrBusy
	}

	n := w.notify(ctx)
	if err := w.checkStepLocked(w.current); err != nil {
		w.mu.Unlock()
		n.Notify(Failure, w.msgs.Invalid)
		return err
	}

	if w.current < len(w.steps)-1 {
		w.current++
		w.mu.Unlock()
		n.Notify(Success, w.msgs.StepDone)
		return nil
	}

	return w.submitLocked(ctx, n)
}

// Submit submits the form from the last step. On any earlier step it
// behaves as Advance, so the two are interchangeable.
func (w *Wizard) Submit(ctx context.Context) error {
	return w.Advance(ctx)
}

// Complete validates every step in order and submits when all pass. The
// wizard is left on the first step that failed.
func (w *Wizard) Complete(ctx context.Context) error {
	w.mu.Lock()
	if w.state == Submitting {
		w.mu.Unlock()
		return ErrBusy
	}

	n := w.notify(ctx)
	for i := range w.steps {
		if err := w.checkStepLocked(i); err != nil {
			w.current = i
			w.mu.Unlock()
			n.Notify(Failure, w.msgs.Invalid)
			return err
		}
	}

	w.current = len(w.steps) - 1
	return w.submitLocked(ctx, n)
}

// checkStepLocked validates one step, replacing the error map.
func (w *Wizard) checkStepLocked(step int) error {
	w.state = Validating
	defer func() {
		if w.state == Validating {
			w.state = Idle
		}
	}()

	errs := make(map[string]string)
	for _, f := range w.steps[step].Fields {
		if msg := f.Check(w.values[f.Name]); msg != "" {
			errs[f.Name] = msg
		}
	}
	w.errors = errs

	if len(errs) > 0 {
		return &ValidationError{Fields: copyMap(errs)}
	}
	return nil
}

// submitLocked must be entered with w.mu held; it releases the lock.
func (w *Wizard) submitLocked(ctx context.Context, n Notifier) error {
	w.state = Submitting
	values := copyMap(w.values)
	w.mu.Unlock()

	err := w.submit(ctx, values)

	w.mu.Lock()
	w.state = Idle
	if err != nil {
		w.mu.Unlock()
		n.Notify(Failure, fmt.Sprintf("%s: %s", w.msgs.FailedPrefix, err.Error()))
		return err
	}

	for name := range w.values {
		w.values[name] = ""
	}
	w.errors = make(map[string]string)
	w.current = 0
	w.mu.Unlock()

	n.Notify(Success, w.msgs.Submitted)
	return nil
}

func (w *Wizard) notify(ctx context.Context) Notifier {
	return NotifierFor(ctx, w.notifier)
}

// Snapshot is a point-in-time copy of a wizard, shaped for JSON.
type Snapshot struct {
	Step      int               `json:"step"`
	StepCount int               `json:"step_count"`
	Title     string            `json:"title"`
	State     State             `json:"state"`
	Fields    []Field           `json:"fields"`
	Values    map[string]string `json:"values"`
	Errors    map[string]string `json:"errors"`
}

// Snapshot copies the current step, values and errors under the lock.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	step := w.steps[w.current]
	return Snapshot{
		Step:      w.current,
		StepCount: len(w.steps),
		Title:     step.Title,
		State:     w.state,
		Fields:    step.Fields,
		Values:    copyMap(w.values),
		Errors:    copyMap(w.errors),
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
