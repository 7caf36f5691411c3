package waitlist

import (
	"context"
	"fmt"
	"time"
)

// Toast is a transient notification handed to the presentation layer.
// Fire-and-forget; nothing is read back.
type Toast struct {
	Title       string
	Description string
	Variant     string
	Duration    time.Duration
}

const (
	ToastVariantDefault     = "default"
	ToastVariantDestructive = "destructive"
)

// Notifier is the presentation boundary for toasts.
type Notifier interface {
	Notify(Toast)
}

// Submitter is the slice of the service the flow needs.
type Submitter interface {
	Join(ctx context.Context, sub Submission) Result
}

// View is the rendering mode the page is in. Success is terminal: the only
// way out is the "Return home" navigation, which is the router's business.
type View int

const (
	ViewForm View = iota
	ViewSuccess
)

const successToastDuration = 5 * time.Second

// Flow ties the signup form, the submission client, and the notifier
// together: the state a waitlist page owns between user events. It is bound
// to a single form instance and is not safe for concurrent use, matching the
// single-threaded event model it serves.
type Flow struct {
	form       *Form
	svc        Submitter
	notifier   Notifier
	view       View
	username   string
	submitting bool
}

// NewFlow builds a flow over a fresh form.
func NewFlow(svc Submitter, notifier Notifier) *Flow {
	return &Flow{
		form:     NewForm(),
		svc:      svc,
		notifier: notifier,
	}
}

// Form exposes the underlying sequencer for field entry and navigation.
func (f *Flow) Form() *Form { return f.form }

// View returns the current rendering mode.
func (f *Flow) View() View { return f.view }

// Submitting reports whether a submission round trip is in flight; the
// submit control stays disabled while it is.
func (f *Flow) Submitting() bool { return f.submitting }

// Username returns the handle echoed in the success view.
func (f *Flow) Username() string { return f.username }

// Greeting is the welcome line shown once the signup lands.
func (f *Flow) Greeting() string {
	return fmt.Sprintf("Hey %s! I'm Cato AI - your futuristic co-pilot in the fast-changing world of trading and investing.", f.username)
}

// Submit drives the final step: it assembles the submission, fires the single
// insert, and presents the outcome. On a join it flips to the success view,
// echoes the username, and shows the confirmation toast; on any failure it
// shows a destructive toast and stays on the final step so the user can
// correct input or retry. A submit while one is already in flight, or before
// the final gate passes, is a no-op.
func (f *Flow) Submit(ctx context.Context) {
	if f.submitting || f.view != ViewForm {
		return
	}
	sub, ok := f.form.Complete()
	if !ok {
		return
	}

	f.submitting = true
	result := f.svc.Join(ctx, sub)
	f.submitting = false

	if !result.Joined() {
		f.notifier.Notify(Toast{
			Title:       "Submission Error",
			Description: result.Message,
			Variant:     ToastVariantDestructive,
		})
		return
	}

	f.view = ViewSuccess
	f.username = sub.Username
	f.notifier.Notify(Toast{
		Title:       "You're on the list!",
		Description: "We'll notify you when early access becomes available.",
		Variant:     ToastVariantDefault,
		Duration:    successToastDuration,
	})
}
