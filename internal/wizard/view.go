package wizard

// PageView is an in-memory UI implementation. The server-driven wizard
// persists one per session and returns it to the caller after each
// event; tests use it to observe controller behavior. It mirrors the
// page state a browser binding would hold in the DOM.
type PageView struct {
	ActiveSteps       map[int]bool            `json:"active_steps"`
	ExitingSteps      map[int]bool            `json:"exiting_steps"`
	Indicators        map[int]IndicatorState  `json:"indicators"`
	PrevVisible       bool                    `json:"prev_visible"`
	Visible           Action                  `json:"visible_action"`
	Enabled           map[Button]bool         `json:"enabled"`
	Loading           map[Button]string       `json:"loading"`
	FieldErrors       map[string]string       `json:"field_errors"`
	Messages          map[MessageScope]string `json:"messages"`
	Summary           *Summary                `json:"summary,omitempty"`
	LoaderText        string                  `json:"loader_text"`
	LoaderShown       bool                    `json:"loader_shown"`
	ScrolledTo        int                     `json:"scrolled_to"`
	ScrolledToMessage MessageScope            `json:"scrolled_to_message,omitempty"`
	FocusedStep       int                     `json:"focused_step"`
	Focused           bool                    `json:"focused"`
	RedirectURL       string                  `json:"redirect_url,omitempty"`
}

// NewPageView returns an empty page view.
func NewPageView() *PageView {
	return &PageView{
		ActiveSteps:  make(map[int]bool),
		ExitingSteps: make(map[int]bool),
		Indicators:   make(map[int]IndicatorState),
		Enabled:      make(map[Button]bool),
		Loading:      make(map[Button]string),
		FieldErrors:  make(map[string]string),
		Messages:     make(map[MessageScope]string),
		ScrolledTo:   -1,
	}
}

func (v *PageView) ActivateStep(index int) {
	v.ActiveSteps[index] = true
	delete(v.ExitingSteps, index)
}

func (v *PageView) DeactivateStep(index int) {
	delete(v.ActiveSteps, index)
}

func (v *PageView) SetExiting(index int, exiting bool) {
	if exiting {
		v.ExitingSteps[index] = true
	} else {
		delete(v.ExitingSteps, index)
	}
}

func (v *PageView) SetIndicator(index int, state IndicatorState) {
	v.Indicators[index] = state
}

func (v *PageView) SetPrevVisible(visible bool) { v.PrevVisible = visible }

func (v *PageView) ShowAction(a Action) { v.Visible = a }

func (v *PageView) SetEnabled(b Button, enabled bool) { v.Enabled[b] = enabled }

func (v *PageView) SetLoading(b Button, loading bool, label string) {
	if loading {
		v.Loading[b] = label
		v.Enabled[b] = false
	} else {
		delete(v.Loading, b)
		v.Enabled[b] = true
	}
}

func (v *PageView) ShowFieldError(name, message string) { v.FieldErrors[name] = message }

func (v *PageView) ClearFieldError(name string) { delete(v.FieldErrors, name) }

func (v *PageView) FieldErrorVisible(name string) bool {
	_, ok := v.FieldErrors[name]
	return ok
}

func (v *PageView) ShowFormMessage(scope MessageScope, text string) { v.Messages[scope] = text }

func (v *PageView) ClearFormMessage(scope MessageScope) { delete(v.Messages, scope) }

func (v *PageView) RenderSummary(s Summary) { v.Summary = &s }

func (v *PageView) ShowLoader(text string) {
	v.LoaderShown = true
	v.LoaderText = text
}

func (v *PageView) HideLoader() { v.LoaderShown = false }

func (v *PageView) ScrollToHeading(step int) { v.ScrolledTo = step }

func (v *PageView) ScrollToMessage(scope MessageScope) { v.ScrolledToMessage = scope }

func (v *PageView) FocusFirstError(step int) {
	v.FocusedStep = step
	v.Focused = true
}

func (v *PageView) Redirect(url string) { v.RedirectURL = url }

// ActiveStep returns the single active step index, or -1 if none is
// active (only possible mid-transition).
func (v *PageView) ActiveStep() int {
	if len(v.ActiveSteps) != 1 {
		return -1
	}
	for i, active := range v.ActiveSteps {
		if active {
			return i
		}
	}
	return -1
}
