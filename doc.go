// Package tripbook reconstructs historical, per-vehicle trip timelines from
// sequences of GTFS-Realtime snapshots.
//
// A GTFS-RT feed is a lossy view of the system: each snapshot reports, per
// trip, only the stops still ahead and the vehicle's current status. Trip
// identifiers are recycled within an operating day, and trips disappear from
// the feed with no explicit lifecycle signal. This library turns that stream
// into a clean, time-bounded log of what happened at each stop for each
// distinct trip, and lets independently built logs for adjoining time windows
// be stitched into longer logs without reprocessing raw snapshots.
//
// # Pipeline
//
// The processing pipeline, end to end:
//
//	raw protobuf bytes
//	  -> gtfsrt.ParseFeed      (decode into the normalized message model)
//	  -> gtfsrt.CleanSnapshots (drop malformed messages, with diagnostics)
//	  -> tripify.Logify        (collate identities, classify, synthesize logs)
//	  -> ops.CutCancellations / ops.DiscardPartialLogs (optional cleanup)
//	  -> formatter.WriteCSV / WriteStopTimesGTFS / WriteSQL
//
// Two logbooks covering adjoining time windows are combined with
// ops.MergeLogbooks, which resolves continuations against cancellations.
//
// # Usage
//
// Basic setup:
//
//	import (
//	    "github.com/theoremus-urban-solutions/gtfsrt-tripbook/gtfsrt"
//	    "github.com/theoremus-urban-solutions/gtfsrt-tripbook/ops"
//	    "github.com/theoremus-urban-solutions/gtfsrt-tripbook/tripify"
//	)
//
//	var snapshots []*gtfsrt.Snapshot
//	for _, b := range rawFeeds {
//	    snap, err := gtfsrt.ParseFeed(b)
//	    if err != nil {
//	        continue // a corrupt feed file carries no usable information
//	    }
//	    snapshots = append(snapshots, snap)
//	}
//	snapshots, diagnostics := gtfsrt.CleanSnapshots(snapshots)
//
//	book, err := tripify.Logify(snapshots)
//	if err != nil {
//	    // a classifier invariant was violated; the batch is not trustworthy
//	}
//	ops.CutCancellations(book, ops.DefaultCancellationHeuristic, nil)
//	book = ops.DiscardPartialLogs(book)
//
// # Thread safety
//
// The core is pure, synchronous, single-batch computation with no I/O. All
// structures are exclusively owned by their constructing call; merges consume
// their inputs and produce new owned outputs. Nothing in this module is safe
// for concurrent mutation, and nothing needs to be: per-trip classification
// and synthesis share no state, so callers may shard batches across
// goroutines and merge the resulting logbooks.
package tripbook
