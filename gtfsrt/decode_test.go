package gtfsrt

import (
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func marshalFeed(t *testing.T, fm *gtfsrtpb.FeedMessage) []byte {
	t.Helper()
	b, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("failed to marshal feed: %v", err)
	}
	return b
}

func feedHeader(timestamp uint64) *gtfsrtpb.FeedHeader {
	return &gtfsrtpb.FeedHeader{
		GtfsRealtimeVersion: proto.String("2.0"),
		Timestamp:           proto.Uint64(timestamp),
	}
}

func TestParseFeed(t *testing.T) {
	fm := &gtfsrtpb.FeedMessage{
		Header: feedHeader(1000),
		Entity: []*gtfsrtpb.FeedEntity{
			{
				Id: proto.String("1"),
				TripUpdate: &gtfsrtpb.TripUpdate{
					Trip: &gtfsrtpb.TripDescriptor{
						TripId:    proto.String("trip_1"),
						RouteId:   proto.String("1"),
						StartDate: proto.String("20260829"),
					},
					StopTimeUpdate: []*gtfsrtpb.TripUpdate_StopTimeUpdate{
						{
							StopId:    proto.String("103S"),
							Arrival:   &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(1010)},
							Departure: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(1020)},
						},
						{
							StopId:  proto.String("104S"),
							Arrival: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(1050)},
						},
					},
				},
			},
			{
				Id: proto.String("2"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Trip: &gtfsrtpb.TripDescriptor{
						TripId:  proto.String("trip_1"),
						RouteId: proto.String("1"),
					},
					CurrentStatus: gtfsrtpb.VehiclePosition_STOPPED_AT.Enum(),
					StopId:        proto.String("103S"),
					Timestamp:     proto.Uint64(995),
				},
			},
		},
	}

	snap, err := ParseFeed(marshalFeed(t, fm))
	if err != nil {
		t.Fatalf("ParseFeed returned error: %v", err)
	}

	if snap.Timestamp != 1000 {
		t.Errorf("expected snapshot timestamp 1000, got %d", snap.Timestamp)
	}
	if len(snap.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(snap.Messages))
	}

	tu := snap.Messages[0].TripUpdate
	if tu == nil {
		t.Fatal("expected first message to be a trip update")
	}
	if tu.TripID != "trip_1" || tu.RouteID != "1" || tu.StartDate != "20260829" {
		t.Errorf("trip descriptor fields not decoded: %+v", tu)
	}
	if len(tu.StopTimeUpdates) != 2 {
		t.Fatalf("expected 2 stop time updates, got %d", len(tu.StopTimeUpdates))
	}
	first := tu.StopTimeUpdates[0]
	if first.StopID != "103S" || first.Arrival == nil || *first.Arrival != 1010 ||
		first.Departure == nil || *first.Departure != 1020 {
		t.Errorf("first stop time update not decoded: %+v", first)
	}
	second := tu.StopTimeUpdates[1]
	if second.Departure != nil {
		t.Error("missing departure should decode as nil")
	}

	v := snap.Messages[1].Vehicle
	if v == nil {
		t.Fatal("expected second message to be a vehicle position")
	}
	if v.CurrentStatus != StoppedAt {
		t.Errorf("expected STOPPED_AT, got %s", v.CurrentStatus)
	}
	if v.CurrentStopID != "103S" || v.Timestamp != 995 {
		t.Errorf("vehicle fields not decoded: %+v", v)
	}

	if snap.VehicleFor("trip_1") == nil {
		t.Error("VehicleFor should find the paired vehicle message")
	}
	if snap.VehicleFor("trip_2") != nil {
		t.Error("VehicleFor should return nil for unknown trips")
	}
}

func TestParseFeedDefaultVehicleStatus(t *testing.T) {
	fm := &gtfsrtpb.FeedMessage{
		Header: feedHeader(1000),
		Entity: []*gtfsrtpb.FeedEntity{
			{
				Id: proto.String("1"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Trip: &gtfsrtpb.TripDescriptor{TripId: proto.String("trip_1")},
				},
			},
		},
	}

	snap, err := ParseFeed(marshalFeed(t, fm))
	if err != nil {
		t.Fatalf("ParseFeed returned error: %v", err)
	}
	if got := snap.Messages[0].Vehicle.CurrentStatus; got != InTransitTo {
		t.Errorf("expected default status IN_TRANSIT_TO, got %s", got)
	}
}

func TestParseFeedSkipsAlerts(t *testing.T) {
	fm := &gtfsrtpb.FeedMessage{
		Header: feedHeader(1000),
		Entity: []*gtfsrtpb.FeedEntity{
			{Id: proto.String("1"), Alert: &gtfsrtpb.Alert{}},
		},
	}

	snap, err := ParseFeed(marshalFeed(t, fm))
	if err != nil {
		t.Fatalf("ParseFeed returned error: %v", err)
	}
	if len(snap.Messages) != 0 {
		t.Errorf("expected alerts to be skipped, got %d messages", len(snap.Messages))
	}
}

func TestParseFeedRejectsGarbage(t *testing.T) {
	if _, err := ParseFeed([]byte{0xff, 0xff, 0xff, 0xff}); err == nil {
		t.Error("expected an error for undecodable input")
	}
}
