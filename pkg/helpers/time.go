package helpers

import (
	"fmt"
	"time"

	mailtpl "github.com/Codebuster0001/portfolio3/pkg/mailer/templates"
)

// LocalizeTimes rewrites the human-readable time fields of job data into loc.
// Fields that are missing or unparsable are left alone.
func LocalizeTimes(data map[string]any, loc *time.Location) {
	if data == nil || loc == nil {
		return
	}
	if v, ok := data["ExpiresAt"]; ok {
		if t, ok2 := parseTimeAny(v); ok2 {
			data["ExpiresAtText"] = t.In(loc).Format(mailtpl.TimeLayout)
		}
	}
	if v, ok := data["TimeAt"]; ok {
		if t, ok2 := parseTimeAny(v); ok2 {
			data["Time"] = t.In(loc).Format(mailtpl.TimeLayout)
		}
	}
}

func parseTimeAny(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, !t.IsZero()
	}
	s := fmt.Sprintf("%v", v)
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05 -0700 MST",
		"2006-01-02 15:04:05 -0700",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			// zero times survive JSON as "0001-01-01T00:00:00Z"
			return t, !t.IsZero()
		}
	}
	return time.Time{}, false
}
