package shared

import "time"

var dateFormats = []string{time.RFC3339, "2006-01-02"}

// ParseDate reads the date fields the API accepts: payroll payment_date,
// attendance date, leave start/end dates and the report range bounds. Clients
// send either an RFC3339 timestamp or a bare YYYY-MM-DD day. An empty value
// parses to the zero time so optional fields stay distinguishable from bad ones.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	var lastErr error
	for _, format := range dateFormats {
		parsed, err := time.Parse(format, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
