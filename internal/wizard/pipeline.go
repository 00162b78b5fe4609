package wizard

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Proceed handles the "Proceed to Disclaimers" action, present only on
// the 6-step form's review step. It validates every prior step and
// navigates to the final step; submission is deferred to the Payment
// click.
func (c *Controller) Proceed(ctx context.Context) {
	if !c.form.HasSeparateDisclaimerStep() || c.state.CurrentStep != c.form.PenultimateIndex() {
		c.logger.Warn("proceed ignored", "step", c.state.CurrentStep)
		return
	}
	c.state.AttemptedSubmit = true
	c.ui.SetLoading(ButtonProceed, true, labelChecking)

	if !c.validateThrough(c.form.PenultimateIndex()) {
		c.ui.SetLoading(ButtonProceed, false, "")
		return
	}

	c.ui.SetLoading(ButtonProceed, false, "")
	c.RequestTransition(c.form.PaymentIndex())
}

// Payment handles the terminal payment action: checkbox gate, full
// prior-step validation, remote submission, then redirect. Clicks from
// any step other than the final one are dropped.
func (c *Controller) Payment(ctx context.Context) {
	if c.state.CurrentStep != c.form.PaymentIndex() {
		c.logger.Warn("payment ignored", "step", c.state.CurrentStep)
		return
	}
	c.state.AttemptedSubmit = true
	c.ui.SetLoading(ButtonPayment, true, labelChecking)
	c.ui.ClearFormMessage(MessageFinal)

	if !c.refreshPaymentGate() {
		c.ui.ShowFormMessage(MessageFinal, msgAgreeTerms)
		c.ui.ScrollToMessage(MessageFinal)
		c.ui.SetLoading(ButtonPayment, false, "")
		return
	}

	if !c.validateThrough(c.form.PenultimateIndex()) {
		c.ui.SetLoading(ButtonPayment, false, "")
		return
	}

	if !c.submit(ctx, ButtonPayment) {
		return
	}
	c.redirect()
}

// validateThrough re-validates steps 0..last in order. The first
// failing step gets navigated back to, with the page-level message and
// focus applied once the transition settles. No submission happens
// after a failure.
func (c *Controller) validateThrough(last int) bool {
	for i := 0; i <= last; i++ {
		if c.validateStep(i) {
			continue
		}
		step := i
		settle := c.settleSlack
		if c.state.CurrentStep != step {
			c.RequestTransition(step)
			settle = c.transitionDelay + c.settleSlack
		}
		c.after(settle, func() {
			c.ui.ShowFormMessage(MessageForm, msgCorrectErrors)
			c.ui.FocusFirstError(step)
		})
		return false
	}
	return true
}

// submit serializes the form and posts it to the site's own endpoint.
// It reports whether submission succeeded; every failure kind leaves
// the user on the current step with a page-level message and the
// triggering button restored.
func (c *Controller) submit(ctx context.Context, trigger Button) bool {
	c.ui.ClearFormMessage(MessageForm)
	c.ui.SetLoading(trigger, true, labelSubmitting)
	c.ui.ShowLoader(loaderSubmitting)

	res := c.submitter.Submit(ctx, c.payload())

	success := res.Outcome == OutcomeSuccess
	switch res.Outcome {
	case OutcomeSuccess:
		c.logger.Info("submission accepted", "form", c.form.Name)
	case OutcomeHTTPError:
		c.logger.Error("submission rejected", "form", c.form.Name, "status", res.Status)
		c.ui.ShowFormMessage(MessageForm, fmt.Sprintf("Submission failed (Status: %d). Please check details or contact us.", res.Status))
	case OutcomeTimeout:
		c.logger.Error("submission timed out", "form", c.form.Name)
		c.ui.ShowFormMessage(MessageForm, msgSubmitTimeout)
	default:
		c.logger.Error("submission network failure", "form", c.form.Name)
		c.ui.ShowFormMessage(MessageForm, msgSubmitNetwork)
	}

	// Brief delay so the overlay can fade out. The button is restored
	// only on failure; on success the page is about to navigate away.
	c.after(c.transitionDelay/2, c.ui.HideLoader)
	if !success {
		c.ui.SetLoading(trigger, false, "")
	}
	return success
}

// redirect sends the browser to the external payment page. A missing
// or placeholder link is treated like a submission failure and the
// user stays on the page.
func (c *Controller) redirect() {
	link := c.form.PaymentLink
	if link == "" || link == "#" {
		c.logger.Error("payment link missing", "form", c.form.Name)
		c.ui.ShowFormMessage(MessageFinal, msgLinkUnavailable)
		c.ui.SetLoading(ButtonPayment, false, "")
		return
	}
	c.ui.SetLoading(ButtonPayment, true, labelRedirecting)
	c.ui.ShowLoader(loaderRedirecting)
	c.after(c.redirectDelay, func() { c.ui.Redirect(link) })
}

// payload serializes every form field by name, plus each required
// final-step checkbox as name=true|false, plus the form's name.
func (c *Controller) payload() url.Values {
	values := url.Values{}
	values.Set("form-name", c.form.Name)
	for _, step := range c.form.Steps {
		for _, f := range step.Fields {
			if f.Type == FieldCheckbox {
				continue
			}
			values.Set(f.Name, c.state.Value(f.Name))
		}
	}
	for _, box := range c.form.RequiredCheckboxes() {
		values.Set(box.Name, strconv.FormatBool(c.state.IsChecked(box.Name)))
	}
	return values
}
