package alerter

import (
	"fmt"
	"log"
	"strings"

	"SessionSpectra/internal/config"
	"SessionSpectra/internal/model"

	"github.com/gomarkdown/markdown"
)

// Alerter evaluates concurrency snapshots against predefined rules and
// sends a consolidated notification when any rule triggers. It implements
// the collector's Observer interface.
type Alerter struct {
	rules    []config.AlerterRule
	notifier model.Notifier
}

// NewAlerter creates a new Alerter instance.
func NewAlerter(cfg *config.AlerterConfig, notifier model.Notifier) *Alerter {
	return &Alerter{rules: cfg.Rules, notifier: notifier}
}

// ObserveSnapshot evaluates every rule against the snapshot's metrics and,
// if any triggered, emails a single summary of all of them.
func (a *Alerter) ObserveSnapshot(snap *model.Snapshot) {
	var triggered []string

	for _, rule := range a.rules {
		var value float64
		var unit string

		switch rule.Metric {
		case "peak_concurrency":
			value = float64(snap.Peak())
			unit = "sessions"
		case "total_sessions":
			value = float64(snap.Sessions)
			unit = "sessions"
		case "span_seconds":
			value = float64(len(snap.Counts))
			unit = "seconds"
		default:
			log.Printf("Warning: unknown metric '%s' in alerter rule '%s'", rule.Metric, rule.Name)
			continue
		}

		if check(value, rule.Threshold, rule.Operator) {
			msg := fmt.Sprintf("### Alert: %s\n\n"+
				"- **Metric:** `%s`\n"+
				"- **Condition:** `%s %.2f`\n"+
				"- **Observed Value:** `%.0f %s`\n"+
				"- **Snapshot:** `%s`\n",
				rule.Name, rule.Metric, rule.Operator, rule.Threshold, value, unit, snap.ID)
			triggered = append(triggered, msg)
		}
	}

	if len(triggered) == 0 {
		return
	}

	log.Printf("Alerter evaluation completed. %d alert(s) triggered.", len(triggered))

	body := "# SessionSpectra Alert Summary\n\n" +
		"The following alerts were triggered by the latest snapshot:\n\n" +
		strings.Join(triggered, "\n---\n\n")
	html := markdown.ToHTML([]byte(body), nil, nil)

	if a.notifier != nil {
		subject := fmt.Sprintf("SessionSpectra Alert Summary (%d Triggered)", len(triggered))
		if err := a.notifier.Send(subject, string(html)); err != nil {
			log.Printf("ERROR: Failed to send consolidated alert notification: %v", err)
		} else {
			log.Printf("INFO: Consolidated alert notification sent successfully.")
		}
	}
}

// check compares a value against a threshold based on an operator.
func check(value, threshold float64, operator string) bool {
	switch operator {
	case ">":
		return value > threshold
	case "<":
		return value < threshold
	case "=":
		return value == threshold
	case ">=":
		return value >= threshold
	case "<=":
		return value <= threshold
	default:
		log.Printf("Warning: unknown operator '%s' in alerter rule", operator)
		return false
	}
}
