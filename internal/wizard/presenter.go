package wizard

// Action identifies which forward action button is appropriate for a
// step index.
type Action string

const (
	ActionNext    Action = "next"
	ActionProceed Action = "proceed"
	ActionPayment Action = "payment"
)

// Button identifies one of the wizard's navigation buttons.
type Button string

const (
	ButtonPrev    Button = "prev"
	ButtonNext    Button = "next"
	ButtonProceed Button = "proceed"
	ButtonPayment Button = "payment"
)

// ButtonFor maps an action to the button that triggers it.
func ButtonFor(a Action) Button {
	switch a {
	case ActionProceed:
		return ButtonProceed
	case ActionPayment:
		return ButtonPayment
	}
	return ButtonNext
}

// ActionFor is the single source of truth for which forward action is
// visible on step i. Exactly one of Next/Proceed/Payment applies for
// every valid index; Previous is handled independently.
func ActionFor(i, totalSteps int, hasSeparateDisclaimerStep bool) Action {
	switch {
	case i == totalSteps-1:
		return ActionPayment
	case i == totalSteps-2 && hasSeparateDisclaimerStep:
		return ActionProceed
	default:
		return ActionNext
	}
}

// IndicatorState is the visual state of one step indicator.
type IndicatorState string

const (
	IndicatorActive    IndicatorState = "active"
	IndicatorCompleted IndicatorState = "completed"
	IndicatorUpcoming  IndicatorState = "upcoming"
)

// MessageScope addresses one of the page's message areas.
type MessageScope string

const (
	// MessageForm is the general message area below the summary.
	MessageForm MessageScope = "form"
	// MessageFinal is the message area inside the final step.
	MessageFinal MessageScope = "final"
)

// UI is the controller's view of the booking page. A browser binding
// would mutate the DOM; the server-driven wizard records into a
// PageView; tests do the same. Clearing operations are idempotent.
type UI interface {
	// Step panels and indicators.
	ActivateStep(index int)
	DeactivateStep(index int)
	SetExiting(index int, exiting bool)
	SetIndicator(index int, state IndicatorState)

	// Navigation buttons.
	SetPrevVisible(visible bool)
	ShowAction(a Action)
	SetEnabled(b Button, enabled bool)
	SetLoading(b Button, loading bool, label string)

	// Field error presentation.
	ShowFieldError(name, message string)
	ClearFieldError(name string)
	FieldErrorVisible(name string) bool

	// Page-level messages.
	ShowFormMessage(scope MessageScope, text string)
	ClearFormMessage(scope MessageScope)

	// Review panel.
	RenderSummary(s Summary)

	// Loading overlay and scroll choreography.
	ShowLoader(text string)
	HideLoader()
	ScrollToHeading(step int)
	ScrollToMessage(scope MessageScope)
	FocusFirstError(step int)

	// Terminal navigation to the external payment page.
	Redirect(url string)
}

// ErrorPresenter translates validator verdicts into visible field
// state. It is the only component that surfaces per-field errors;
// the validator itself stays side-effect free.
type ErrorPresenter struct {
	ui UI
}

// NewErrorPresenter wraps a UI port.
func NewErrorPresenter(ui UI) ErrorPresenter {
	return ErrorPresenter{ui: ui}
}

// Present applies a verdict to the page: shows the field's inline
// message when invalid, clears it when valid. Clearing a field that
// never showed an error is safe.
func (p ErrorPresenter) Present(f Field, v Verdict) {
	if v.Valid {
		p.ui.ClearFieldError(f.Name)
		return
	}
	p.ui.ShowFieldError(f.Name, v.Message)
}

// Clear removes any visible error for the field.
func (p ErrorPresenter) Clear(f Field) {
	p.ui.ClearFieldError(f.Name)
}
