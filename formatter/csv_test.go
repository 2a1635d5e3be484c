package formatter

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/tripify"
)

func fptr(v int64) *int64 { return &v }

func sampleLogbook() *tripify.Logbook {
	book := tripify.NewLogbook()
	book.Logs["uuid-a"] = tripify.TripLog{
		{
			TripID: "trip_1", RouteID: "1", Action: tripify.StoppedAt,
			MinimumTime: fptr(0), MaximumTime: fptr(2),
			StopID: "103S", LatestInformationTime: 1,
		},
		{
			TripID: "trip_1", RouteID: "1", Action: tripify.EnRouteTo,
			MinimumTime: fptr(1), MaximumTime: nil,
			StopID: "104S", LatestInformationTime: 1,
		},
	}
	book.Timestamps["uuid-a"] = []int64{0, 1}
	book.Logs["uuid-b"] = tripify.TripLog{
		{
			TripID: "trip_2", RouteID: "2", Action: tripify.StoppedOrSkipped,
			MinimumTime: fptr(5), MaximumTime: fptr(7),
			StopID: "200N", LatestInformationTime: 7,
		},
	}
	book.Timestamps["uuid-b"] = []int64{5, 7}
	return book
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleLogbook()); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if !reflect.DeepEqual(rows[0], Header) {
		t.Errorf("expected header %v, got %v", Header, rows[0])
	}
	if len(rows) != 4 {
		t.Fatalf("expected 3 data rows, got %d", len(rows)-1)
	}

	// Trips come out in unique trip id order.
	expected := [][]string{
		{"uuid-a", "trip_1", "1", "STOPPED_AT", "0", "2", "103S", "1"},
		{"uuid-a", "trip_1", "1", "EN_ROUTE_TO", "1", "", "104S", "1"},
		{"uuid-b", "trip_2", "2", "STOPPED_OR_SKIPPED", "5", "7", "200N", "7"},
	}
	for i, want := range expected {
		if !reflect.DeepEqual(rows[i+1], want) {
			t.Errorf("row %d: expected %v, got %v", i+1, want, rows[i+1])
		}
	}
}

func TestWriteCSVEmptyLogbook(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, tripify.NewLogbook()); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}
