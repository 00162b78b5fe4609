package wizard

// Canonical definitions for the two booking pages. The full-service
// page carries a separate disclaimer step (6 panels); the hourly page
// folds disclaimers into the final payment step (5 panels).

// FullServiceForm returns the 6-step full-service booking form.
func FullServiceForm(paymentLink string) *Form {
	return &Form{
		Name:        "booking-full-service",
		PaymentLink: paymentLink,
		Steps: []Step{
			{Title: "Event Date & Time", Fields: []Field{
				{Name: "event_date", Type: FieldDate, Required: true},
				{Name: "event_time", Type: FieldTime, Required: true},
			}},
			{Title: "Event Details", Fields: []Field{
				{Name: "event_type", Type: FieldSelect, Required: true},
				{Name: "venue_name", Type: FieldText},
				{Name: "venue_address", Type: FieldText, Required: true},
				{Name: "piano_availability", Type: FieldSelect, Required: true},
			}},
			{Title: "Contact Information", Fields: []Field{
				{Name: "name", Type: FieldText, Required: true},
				{Name: "email", Type: FieldEmail, Required: true},
				{Name: "phone", Type: FieldTel},
				{Name: "referral", Type: FieldSelect},
			}},
			{Title: "Additional Notes", Fields: []Field{
				{Name: "message", Type: FieldTextarea},
			}},
			{Title: "Review Your Request"},
			{Title: "Disclaimers & Payment", Fields: []Field{
				{Name: "agree_scope", Type: FieldCheckbox, Required: true},
				{Name: "agree_payment", Type: FieldCheckbox, Required: true},
			}},
		},
	}
}

// HourlyForm returns the 5-step hourly booking form.
func HourlyForm(paymentLink string) *Form {
	return &Form{
		Name:        "booking-hourly",
		PaymentLink: paymentLink,
		Steps: []Step{
			{Title: "Event Date & Time", Fields: []Field{
				{Name: "event_date", Type: FieldDate, Required: true},
				{Name: "event_time", Type: FieldTime, Required: true},
				{Name: "estimated_duration", Type: FieldNumber, Required: true, Min: 1, HasMin: true},
			}},
			{Title: "Event Details", Fields: []Field{
				{Name: "event_type_hourly", Type: FieldSelect, Required: true},
				{Name: "venue_name", Type: FieldText},
				{Name: "venue_address", Type: FieldText, Required: true},
				{Name: "piano_availability", Type: FieldSelect, Required: true},
			}},
			{Title: "Contact Information", Fields: []Field{
				{Name: "name", Type: FieldText, Required: true},
				{Name: "email", Type: FieldEmail, Required: true},
				{Name: "phone", Type: FieldTel},
				{Name: "referral", Type: FieldSelect},
				{Name: "message_hourly", Type: FieldTextarea},
			}},
			{Title: "Review Your Request"},
			{Title: "Deposit & Payment", Fields: []Field{
				{Name: "agree_hourly_deposit", Type: FieldCheckbox, Required: true},
				{Name: "agree_hourly_balance", Type: FieldCheckbox, Required: true},
			}},
		},
	}
}
