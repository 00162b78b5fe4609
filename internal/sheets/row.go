package sheets

import (
	"strings"
	"time"

	"github.com/keysbycaleb/booking-platform/internal/relay"
)

// columnOrder must match the spreadsheet's header row exactly; rows
// are appended positionally.
var columnOrder = []string{
	"Timestamp", "Form Name", "Name", "Email", "Phone", "Event Date", "Event Time",
	"Estimated Duration", "Event Type", "Venue Name", "Venue Address",
	"Piano Availability", "Referral", "Message", "Agreed Scope Term", "Agreed Payment Term",
}

// BuildRow lays out one relay job as a spreadsheet row. Per-form field
// aliases collapse into the shared columns, and unknown fields are
// simply left blank.
func BuildRow(job *relay.Job, timestamp time.Time) []interface{} {
	pick := func(names ...string) string {
		for _, n := range names {
			if v := job.Fields[n]; v != "" {
				return v
			}
		}
		return ""
	}

	row := make([]interface{}, 0, len(columnOrder))
	for _, header := range columnOrder {
		switch header {
		case "Timestamp":
			row = append(row, timestamp.UTC().Format(time.RFC3339))
		case "Form Name":
			row = append(row, job.FormName)
		case "Event Type":
			row = append(row, pick("event_type", "event_type_hourly"))
		case "Message":
			row = append(row, pick("message", "message_hourly"))
		case "Agreed Scope Term":
			row = append(row, pick("agree_scope", "agree_hourly_deposit"))
		case "Agreed Payment Term":
			row = append(row, pick("agree_payment", "agree_hourly_balance"))
		default:
			key := strings.ToLower(strings.ReplaceAll(header, " ", "_"))
			row = append(row, pick(key))
		}
	}
	return row
}
