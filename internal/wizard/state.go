package wizard

// State is the mutable wizard state for one booking form instance.
// One value is owned by one Controller; it is never shared between
// controllers. All fields are exported so session stores can persist
// the state between server-driven events.
type State struct {
	// CurrentStep is the index of the active step panel.
	CurrentStep int `json:"current_step"`

	// Transitioning is true exactly while a step-change animation is
	// in flight. All navigation requests are dropped while set.
	Transitioning bool `json:"transitioning"`

	// AttemptedSubmit flips to true the first time the user tries to
	// advance past a step or submit, and never resets. It governs
	// whether losing focus on a field surfaces validation errors.
	AttemptedSubmit bool `json:"attempted_submit"`

	// Values holds the current text value per field name.
	Values map[string]string `json:"values"`

	// Checked holds the checked state per checkbox name.
	Checked map[string]bool `json:"checked"`
}

// NewState returns an empty state positioned on the first step.
func NewState() *State {
	return &State{
		Values:  make(map[string]string),
		Checked: make(map[string]bool),
	}
}

// Value returns the current value for a field name.
func (s *State) Value(name string) string { return s.Values[name] }

// IsChecked returns the checked state for a checkbox name.
func (s *State) IsChecked(name string) bool { return s.Checked[name] }
