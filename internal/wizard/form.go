package wizard

import "errors"

// ErrStepCount is returned when a form definition does not have exactly
// 5 or 6 steps. Initialization aborts before any page state is touched.
var ErrStepCount = errors.New("wizard: form must have exactly 5 or 6 steps")

// FieldType identifies the input kind of a form field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldDate     FieldType = "date"
	FieldTime     FieldType = "time"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
	FieldCheckbox FieldType = "checkbox"
)

// Field describes one input on a booking form step.
type Field struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	// Min applies to number fields only; HasMin marks it as present.
	Min    float64 `json:"min,omitempty"`
	HasMin bool    `json:"has_min,omitempty"`
}

// Step is one panel of the multi-step form.
type Step struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Form is the discovered structure of one booking page: its step
// panels, the form name submitted with it, and the external payment
// link carried by the payment button.
type Form struct {
	Name        string `json:"name"`
	Steps       []Step `json:"steps"`
	PaymentLink string `json:"payment_link"`
}

// TotalSteps reports the number of step panels.
func (f *Form) TotalSteps() int { return len(f.Steps) }

// HasSeparateDisclaimerStep reports whether the form carries a
// dedicated disclaimer step between review and payment (6-step pages).
func (f *Form) HasSeparateDisclaimerStep() bool { return len(f.Steps) == 6 }

// PenultimateIndex is the review step shown just before payment.
func (f *Form) PenultimateIndex() int { return len(f.Steps) - 2 }

// PaymentIndex is the final step; it always hosts the payment action
// and the agreement checkboxes.
func (f *Form) PaymentIndex() int { return len(f.Steps) - 1 }

// FieldByName finds a field anywhere on the form.
func (f *Form) FieldByName(name string) (Field, bool) {
	for _, step := range f.Steps {
		for _, fld := range step.Fields {
			if fld.Name == name {
				return fld, true
			}
		}
	}
	return Field{}, false
}

// StepOf reports which step carries the named field.
func (f *Form) StepOf(name string) (int, bool) {
	for i, step := range f.Steps {
		for _, fld := range step.Fields {
			if fld.Name == name {
				return i, true
			}
		}
	}
	return 0, false
}

// RequiredCheckboxes lists the submit-gating checkboxes on the final
// step. Checkboxes on earlier steps never gate navigation.
func (f *Form) RequiredCheckboxes() []Field {
	final := f.Steps[f.PaymentIndex()]
	var boxes []Field
	for _, fld := range final.Fields {
		if fld.Type == FieldCheckbox && fld.Required {
			boxes = append(boxes, fld)
		}
	}
	return boxes
}

func (f *Form) validate() error {
	if n := len(f.Steps); n != 5 && n != 6 {
		return ErrStepCount
	}
	return nil
}
