package compare

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/arvenn/mqttdiff/pkg/diff"
)

// TimeLayout renders timestamps as ISO-8601 with an explicit UTC offset
// ("+00:00" rather than "Z").
const TimeLayout = "2006-01-02T15:04:05.999999-07:00"

// RenderDiff formats one comparison as the line protocol: a separator, the
// two timestamps, then one block per difference kind with "+", "-" and "*"
// entry prefixes. Pure; the caller owns the sink.
func RenderDiff(prev, cur time.Time, d diff.Result) []string {
	lines := []string{
		"---",
		"Previous event timestamp: " + prev.Format(TimeLayout),
		"Current event timestamp: " + cur.Format(TimeLayout),
	}
	if d.Empty() {
		return append(lines, "No differences detected between events.")
	}
	if len(d.Added) > 0 {
		lines = append(lines, "Added:")
		for _, e := range d.Added {
			lines = append(lines, fmt.Sprintf("  + %s: %s", e.Path, formatValue(e.Value)))
		}
	}
	if len(d.Removed) > 0 {
		lines = append(lines, "Removed:")
		for _, e := range d.Removed {
			lines = append(lines, fmt.Sprintf("  - %s: %s", e.Path, formatValue(e.Value)))
		}
	}
	if len(d.Changed) > 0 {
		lines = append(lines, "Changed:")
		for _, c := range d.Changed {
			lines = append(lines, fmt.Sprintf("  * %s: %s -> %s", c.Path, formatValue(c.Old), formatValue(c.New)))
		}
	}
	return lines
}

// formatValue prints scalars bare and composites as compact JSON.
func formatValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return "null"
	case string:
		return tv
	case map[string]any, []any:
		if b, err := json.Marshal(tv); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}
