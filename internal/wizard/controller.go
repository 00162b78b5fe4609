package wizard

import (
	"time"

	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

const (
	msgCorrectErrors   = "Please correct the errors highlighted above."
	msgAgreeTerms      = "Please agree to the terms above to proceed."
	msgLinkUnavailable = "Payment link is currently unavailable. Please contact us."
	msgSubmitTimeout   = "Submission timed out. Check connection."
	msgSubmitNetwork   = "Network error during submission. Please try again."

	loaderSubmitting  = "Submitting Request..."
	loaderRedirecting = "Redirecting to Secure Payment..."

	labelChecking    = "Checking..."
	labelSubmitting  = "Submitting..."
	labelRedirecting = "Redirecting..."
)

// Controller owns all state for one booking form instance and drives
// the page through the UI port. It is not safe for concurrent use; all
// events for one form arrive from a single flow, mirroring the page's
// event loop.
type Controller struct {
	form      *Form
	state     *State
	ui        UI
	presenter ErrorPresenter
	submitter Submitter
	logger    *logging.Logger

	now   func() time.Time
	after func(time.Duration, func())

	transitionDelay time.Duration
	settleSlack     time.Duration
	redirectDelay   time.Duration
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithClock injects the time source used for date validation.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithAfter injects the deferred-callback scheduler. The default runs
// callbacks synchronously, which keeps server-driven sessions and
// tests deterministic; a browser-style binding can supply
// time.AfterFunc to animate transitions.
func WithAfter(after func(time.Duration, func())) Option {
	return func(c *Controller) { c.after = after }
}

// WithTransitionDelay sets how long a step change stays in flight
// before the next transition is accepted.
func WithTransitionDelay(d time.Duration) Option {
	return func(c *Controller) { c.transitionDelay = d }
}

// WithState resumes the controller from previously saved state instead
// of starting on the first step.
func WithState(st *State) Option {
	return func(c *Controller) { c.state = st }
}

// New builds a controller for the given form. It fails with
// ErrStepCount before touching the UI when the step count is not 5 or
// 6, so a misauthored page gets no behavior at all.
func New(form *Form, ui UI, submitter Submitter, opts ...Option) (*Controller, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		form:            form,
		ui:              ui,
		presenter:       NewErrorPresenter(ui),
		submitter:       submitter,
		logger:          logging.Default(),
		now:             time.Now,
		after:           func(_ time.Duration, f func()) { f() },
		transitionDelay: 400 * time.Millisecond,
		settleSlack:     50 * time.Millisecond,
		redirectDelay:   150 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.state == nil {
		c.state = NewState()
	}

	c.renderInitial()
	return c, nil
}

// State exposes the controller's state for session persistence.
func (c *Controller) State() *State { return c.state }

// Form exposes the bound form definition.
func (c *Controller) Form() *Form { return c.form }

func (c *Controller) renderInitial() {
	for i := range c.form.Steps {
		if i == c.state.CurrentStep {
			c.ui.ActivateStep(i)
		} else {
			c.ui.DeactivateStep(i)
		}
		c.ui.SetExiting(i, false)
	}
	c.updateIndicators(c.state.CurrentStep)
	c.updateButtons(c.state.CurrentStep)
}

// RequestTransition moves the wizard to targetIndex. Requests are
// dropped while a transition is in flight, for out-of-range targets,
// and for the current step; nothing is queued.
func (c *Controller) RequestTransition(targetIndex int) {
	st := c.state
	if st.Transitioning || targetIndex < 0 || targetIndex >= c.form.TotalSteps() || targetIndex == st.CurrentStep {
		c.logger.Debug("transition dropped",
			"current", st.CurrentStep,
			"target", targetIndex,
			"transitioning", st.Transitioning,
		)
		return
	}
	st.Transitioning = true

	// Entering the review step always recomputes the summary from the
	// current values; it is a snapshot, not a live binding.
	if targetIndex == c.form.PenultimateIndex() {
		c.ui.RenderSummary(BuildSummary(st))
	}
	if st.CurrentStep == c.form.PaymentIndex() {
		c.ui.ClearFormMessage(MessageFinal)
	}

	from := st.CurrentStep
	c.ui.SetExiting(from, true)
	c.ui.ActivateStep(targetIndex)

	c.updateIndicators(targetIndex)
	for _, b := range []Button{ButtonPrev, ButtonNext, ButtonProceed, ButtonPayment} {
		c.ui.SetEnabled(b, false)
	}
	c.showButtonsFor(targetIndex)

	c.after(c.transitionDelay, func() {
		c.ui.DeactivateStep(from)
		c.ui.SetExiting(from, false)
		st.CurrentStep = targetIndex
		st.Transitioning = false
		c.updateButtons(targetIndex)
		c.ui.ScrollToHeading(targetIndex)
	})
}

func (c *Controller) updateIndicators(target int) {
	for i := range c.form.Steps {
		switch {
		case i == target:
			c.ui.SetIndicator(i, IndicatorActive)
		case i < target:
			c.ui.SetIndicator(i, IndicatorCompleted)
		default:
			c.ui.SetIndicator(i, IndicatorUpcoming)
		}
	}
}

func (c *Controller) showButtonsFor(index int) {
	c.ui.SetPrevVisible(index > 0)
	c.ui.ShowAction(ActionFor(index, c.form.TotalSteps(), c.form.HasSeparateDisclaimerStep()))
}

func (c *Controller) updateButtons(index int) {
	c.showButtonsFor(index)
	c.ui.SetEnabled(ButtonPrev, true)
	switch ActionFor(index, c.form.TotalSteps(), c.form.HasSeparateDisclaimerStep()) {
	case ActionNext:
		c.ui.SetEnabled(ButtonNext, true)
	case ActionProceed:
		c.ui.SetEnabled(ButtonProceed, true)
	case ActionPayment:
		c.refreshPaymentGate()
	}
}

// Next validates the current step and advances on success.
func (c *Controller) Next() {
	c.ui.ClearFormMessage(MessageForm)
	if c.validateStep(c.state.CurrentStep) {
		c.state.AttemptedSubmit = true
		c.RequestTransition(c.state.CurrentStep + 1)
		return
	}
	c.ui.ShowFormMessage(MessageForm, msgCorrectErrors)
	c.ui.FocusFirstError(c.state.CurrentStep)
}

// Prev moves one step back without validating.
func (c *Controller) Prev() {
	c.ui.ClearFormMessage(MessageForm)
	c.ui.ClearFormMessage(MessageFinal)
	c.RequestTransition(c.state.CurrentStep - 1)
}

// Edit jumps backward to an earlier step from the review or payment
// step. Forward jumps through edit links are not allowed.
func (c *Controller) Edit(targetIndex int) {
	cur := c.state.CurrentStep
	if cur != c.form.PenultimateIndex() && cur != c.form.PaymentIndex() {
		return
	}
	if targetIndex >= cur {
		return
	}
	c.ui.ClearFormMessage(MessageForm)
	c.ui.ClearFormMessage(MessageFinal)
	c.RequestTransition(targetIndex)
}

// EnterKey handles Enter pressed inside a field: it triggers whichever
// action button is appropriate for the current step, except inside
// textareas and while a transition is in flight.
func (c *Controller) EnterKey(fieldName string) Action {
	if f, ok := c.form.FieldByName(fieldName); ok && f.Type == FieldTextarea {
		return ""
	}
	if c.state.Transitioning {
		return ""
	}
	return ActionFor(c.state.CurrentStep, c.form.TotalSteps(), c.form.HasSeparateDisclaimerStep())
}

// SetValue records a field edit. A visible error re-validates
// immediately so corrections clear on the spot; new errors wait for
// the next checkpoint.
func (c *Controller) SetValue(name, value string) {
	c.state.Values[name] = value
	if c.ui.FieldErrorVisible(name) {
		if f, ok := c.form.FieldByName(name); ok {
			c.presenter.Present(f, Validate(f, value, false, c.now()))
		}
	}
}

// SetChecked records a checkbox change. Final-step required checkboxes
// re-run the payment gate so the button's enabled state tracks them.
func (c *Controller) SetChecked(name string, checked bool) {
	c.state.Checked[name] = checked
	for _, box := range c.form.RequiredCheckboxes() {
		if box.Name == name {
			c.refreshPaymentGate()
			return
		}
	}
	if c.ui.FieldErrorVisible(name) {
		if f, ok := c.form.FieldByName(name); ok {
			c.presenter.Present(f, Validate(f, "", checked, c.now()))
		}
	}
}

// Blur re-validates a field when focus leaves it, once the user has
// attempted to advance at least once or the field already shows an
// error.
func (c *Controller) Blur(name string) {
	if !c.state.AttemptedSubmit && !c.ui.FieldErrorVisible(name) {
		return
	}
	if f, ok := c.form.FieldByName(name); ok {
		c.presenter.Present(f, Validate(f, c.state.Value(name), c.state.IsChecked(name), c.now()))
	}
}

// validateStep runs the checkpoint validation for one step, presenting
// every verdict. Optional, empty fields are only touched when they
// already show a stale error.
func (c *Controller) validateStep(index int) bool {
	if index < 0 || index >= c.form.TotalSteps() {
		return false
	}
	ok := true
	for _, f := range c.form.Steps[index].Fields {
		value := c.state.Value(f.Name)
		hasValue := value != ""
		needsFormatCheck := formatChecked(f.Type)

		if f.Required || (needsFormatCheck && hasValue) {
			v := Validate(f, value, c.state.IsChecked(f.Name), c.now())
			c.presenter.Present(f, v)
			if !v.Valid {
				c.logger.Debug("field validation failed", "step", index, "field", f.Name)
				ok = false
			}
		} else if !hasValue && c.ui.FieldErrorVisible(f.Name) {
			c.presenter.Present(f, Validate(f, value, c.state.IsChecked(f.Name), c.now()))
		}
	}
	return ok
}

func formatChecked(t FieldType) bool {
	switch t {
	case FieldEmail, FieldTel, FieldDate, FieldNumber, FieldTime:
		return true
	}
	return false
}

// refreshPaymentGate runs the required-checkbox predicate for the
// final step, presents each checkbox verdict, and sets the payment
// button's enabled state. A final step with no required checkboxes
// passes vacuously.
func (c *Controller) refreshPaymentGate() bool {
	boxes := c.form.RequiredCheckboxes()
	if len(boxes) == 0 {
		c.ui.SetEnabled(ButtonPayment, true)
		return true
	}

	allChecked := GatePassed(boxes, c.state.Checked)
	for _, box := range boxes {
		c.presenter.Present(box, Validate(box, "", c.state.IsChecked(box.Name), c.now()))
	}
	if allChecked {
		c.ui.SetEnabled(ButtonPayment, true)
		c.ui.ClearFormMessage(MessageFinal)
	} else {
		c.ui.SetEnabled(ButtonPayment, false)
	}
	return allChecked
}
