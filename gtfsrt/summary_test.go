package gtfsrt

import (
	"strings"
	"testing"
)

func TestDiagnosticAggregator(t *testing.T) {
	agg := NewDiagnosticAggregator()
	agg.AddAll([]Diagnostic{
		{Type: DiagNullTripID, Timestamp: 1},
		{Type: DiagNullTripID, Timestamp: 2},
		{Type: DiagVehicleWithoutTripUpdate, TripID: "trip_1", Timestamp: 2},
	})

	if agg.Count() != 3 {
		t.Errorf("expected 3 diagnostics, got %d", agg.Count())
	}

	msg := agg.formatMessage(DiagVehicleWithoutTripUpdate, "mta-1",
		agg.diagnostics[DiagVehicleWithoutTripUpdate])
	if !strings.Contains(msg, "mta-1") || !strings.Contains(msg, "trip trip_1 @ 2") {
		t.Errorf("unexpected summary message: %s", msg)
	}
	if !strings.HasPrefix(msg, "WARNING") {
		t.Errorf("summary should be flagged as a warning: %s", msg)
	}
}
