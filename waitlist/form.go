package waitlist

// Step identifies which field the signup form is currently collecting.
type Step int

const (
	StepFullName Step = iota + 1
	StepEmail
	StepUsername
)

// Form is the three-step signup sequencer. It owns the current step and the
// accumulated field values; steps advance strictly one at a time and only
// when the active field passes its gate. There is no skip-ahead, and Back
// moves exactly one step. The form never leaves the [StepFullName,
// StepUsername] range; completion hands the assembled Submission to the
// caller instead of advancing further.
type Form struct {
	step     Step
	fullName string
	email    string
	username string
}

// NewForm returns an empty form positioned on the first step.
func NewForm() *Form {
	return &Form{step: StepFullName}
}

// Step returns the step currently being collected.
func (f *Form) Step() Step { return f.step }

func (f *Form) SetFullName(v string) { f.fullName = v }
func (f *Form) SetEmail(v string)    { f.email = v }
func (f *Form) SetUsername(v string) { f.username = v }

func (f *Form) FullName() string { return f.fullName }
func (f *Form) Email() string    { return f.email }
func (f *Form) Username() string { return f.username }

// valid reports whether the active step's field passes its gate.
func (f *Form) valid() bool {
	switch f.step {
	case StepFullName:
		return ValidFullName(f.fullName)
	case StepEmail:
		return ValidEmail(f.email)
	case StepUsername:
		return ValidUsername(f.username)
	}
	return false
}

// Advance moves to the next step if the active field passes its gate.
// It reports whether the form moved. A failed gate is a silent no-op, and
// the final step never advances; completion goes through Complete instead.
func (f *Form) Advance() bool {
	if f.step >= StepUsername || !f.valid() {
		return false
	}
	f.step++
	return true
}

// Retreat steps back by exactly one. It is a no-op on the first step, which
// has no Back control anyway.
func (f *Form) Retreat() {
	if f.step > StepFullName {
		f.step--
	}
}

// Complete returns the assembled submission once the form sits on the final
// step and the username gate passes. Earlier-step values are returned exactly
// as entered, untouched by forward/back navigation.
func (f *Form) Complete() (Submission, bool) {
	if f.step != StepUsername || !f.valid() {
		return Submission{}, false
	}
	return Submission{
		FullName: f.fullName,
		Email:    f.email,
		Username: f.username,
	}, true
}
