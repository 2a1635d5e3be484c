package helpers

import (
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/gtfsrt"
)

// StopCall is one planned stop of a fixture trip. Zero Arrival or Departure
// means the feed omits that bound.
type StopCall struct {
	StopID    string
	Arrival   int64
	Departure int64
}

// FixtureTrip describes one trip's messages within a fixture snapshot.
type FixtureTrip struct {
	TripID  string
	RouteID string
	// Status is ignored when Queued is true: a queued trip publishes no
	// vehicle position at all.
	Status gtfsrtpb.VehiclePosition_VehicleStopStatus
	Queued bool
	Stops  []StopCall
}

// BuildFeed assembles a marshaled GTFS-Realtime feed from fixture trips.
func BuildFeed(t *testing.T, timestamp uint64, trips ...FixtureTrip) []byte {
	t.Helper()

	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(timestamp),
		},
	}
	for _, trip := range trips {
		desc := &gtfsrtpb.TripDescriptor{
			TripId:  proto.String(trip.TripID),
			RouteId: proto.String(trip.RouteID),
		}

		tu := &gtfsrtpb.TripUpdate{Trip: desc}
		for _, call := range trip.Stops {
			stu := &gtfsrtpb.TripUpdate_StopTimeUpdate{StopId: proto.String(call.StopID)}
			if call.Arrival != 0 {
				stu.Arrival = &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(call.Arrival)}
			}
			if call.Departure != 0 {
				stu.Departure = &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(call.Departure)}
			}
			tu.StopTimeUpdate = append(tu.StopTimeUpdate, stu)
		}
		fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
			Id:         proto.String(trip.TripID + "_tu"),
			TripUpdate: tu,
		})

		if !trip.Queued {
			fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
				Id: proto.String(trip.TripID + "_vp"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Trip:          desc,
					CurrentStatus: trip.Status.Enum(),
					StopId:        proto.String(trip.Stops[0].StopID),
					Timestamp:     proto.Uint64(timestamp),
				},
			})
		}
	}

	b, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("failed to marshal fixture feed: %v", err)
	}
	return b
}

// ParseFixture decodes a fixture feed, failing the test on error.
func ParseFixture(t *testing.T, b []byte) *gtfsrt.Snapshot {
	t.Helper()
	s, err := gtfsrt.ParseFeed(b)
	if err != nil {
		t.Fatalf("failed to parse fixture feed: %v", err)
	}
	return s
}

// Snapshots builds and decodes a sequence of fixture feeds in one step. Each
// entry of tripsBySnapshot becomes one snapshot; timestamps start at base and
// advance by step.
func Snapshots(t *testing.T, base, step uint64, tripsBySnapshot ...[]FixtureTrip) []*gtfsrt.Snapshot {
	t.Helper()
	out := make([]*gtfsrt.Snapshot, 0, len(tripsBySnapshot))
	for i, trips := range tripsBySnapshot {
		ts := base + uint64(i)*step
		out = append(out, ParseFixture(t, BuildFeed(t, ts, trips...)))
	}
	return out
}
