package gtfsrt

import (
	"fmt"
	"log"
	"strings"
)

// diagnosticInfo holds aggregated information about a specific diagnostic type
type diagnosticInfo struct {
	count    int
	examples []string
}

// DiagnosticAggregator collects cleanup diagnostics and outputs consolidated
// summaries instead of one log line per dropped message.
type DiagnosticAggregator struct {
	diagnostics map[string]*diagnosticInfo
}

// NewDiagnosticAggregator creates a new diagnostic aggregator
func NewDiagnosticAggregator() *DiagnosticAggregator {
	return &DiagnosticAggregator{
		diagnostics: make(map[string]*diagnosticInfo),
	}
}

// Add records one diagnostic occurrence
func (a *DiagnosticAggregator) Add(d Diagnostic) {
	if a.diagnostics[d.Type] == nil {
		a.diagnostics[d.Type] = &diagnosticInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := a.diagnostics[d.Type]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		example := fmt.Sprintf("snapshot %d", d.Timestamp)
		if d.TripID != "" {
			example = fmt.Sprintf("trip %s @ %d", d.TripID, d.Timestamp)
		}
		info.examples = append(info.examples, example)
	}
}

// AddAll records a batch of diagnostics
func (a *DiagnosticAggregator) AddAll(diags []Diagnostic) {
	for _, d := range diags {
		a.Add(d)
	}
}

// LogAll outputs all collected diagnostics in consolidated format
func (a *DiagnosticAggregator) LogAll(feedName string) {
	for diagType, info := range a.diagnostics {
		log.Printf("%s", a.formatMessage(diagType, feedName, info))
	}
}

// Count returns the total number of recorded diagnostics
func (a *DiagnosticAggregator) Count() int {
	total := 0
	for _, info := range a.diagnostics {
		total += info.count
	}
	return total
}

// formatMessage creates a human-readable diagnostic summary
func (a *DiagnosticAggregator) formatMessage(diagType, feedName string, info *diagnosticInfo) string {
	var description, action string

	switch diagType {
	case DiagVehicleWithoutTripUpdate:
		description = "vehicle positions with no paired trip update"
		action = "Dropped the vehicle messages"
	case DiagNullTripID:
		description = "messages with an empty trip id"
		action = "Dropped the messages"
	case DiagEmptyStopSequence:
		description = "trip updates with no stop time updates"
		action = "Dropped the trip updates"
	case DiagDuplicateTimestamp:
		description = "snapshots repeating the previous timestamp"
		action = "Dropped the later copies"
	case DiagNonsequentialTimestamp:
		description = "snapshots out of timestamp order"
		action = "Dropped the out-of-order snapshots"
	default:
		description = diagType
		action = "Dropped"
	}

	examples := ""
	if len(info.examples) > 0 {
		examples = fmt.Sprintf(" (e.g. %s)", strings.Join(info.examples, ", "))
	}
	return fmt.Sprintf("WARNING [%s]: %d %s%s. %s.",
		feedName, info.count, description, examples, action)
}
