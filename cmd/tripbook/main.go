package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	lib "github.com/theoremus-urban-solutions/gtfsrt-tripbook"
	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/config"
	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/formatter"
	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/ops"
	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/tripify"

	_ "modernc.org/sqlite"
)

func main() {
	mode := flag.String("mode", "logify", "logify|merge|fetch")
	configPath := flag.String("config", "", "path to config.yml")
	feedName := flag.String("feed", "", "feed name from config.feeds[]")
	input := flag.String("input", "", "directory of archived protobuf snapshots (merge mode: comma-separated window directories; overrides config)")
	output := flag.String("output", "", "output path (overrides config; - or empty means stdout for csv/gtfs)")
	format := flag.String("format", "", "csv|gtfs|sqlite (overrides config)")
	batch := flag.Int("batch", 0, "merge mode: snapshots per logify window")
	count := flag.Int("count", 1, "fetch mode: number of snapshots to archive")
	flag.Parse()

	lib.InitLogging()
	if err := config.LoadAppConfig(*configPath); err != nil {
		log.Fatalf("config: %v", err)
	}

	switch *mode {
	case "logify":
		book, err := logifyArchive(resolveInput(*input, *feedName), 0)
		if err != nil {
			log.Fatalf("logify: %v", err)
		}
		applyHeuristics(book)
		if err := writeOut(book, *format, *output); err != nil {
			log.Fatalf("write: %v", err)
		}
	case "merge":
		dirs := strings.Split(resolveInput(*input, *feedName), ",")
		if len(dirs) == 1 && *batch <= 0 {
			log.Fatal("merge mode requires multiple -input directories or -batch > 0")
		}
		book, err := mergeArchives(dirs, *batch)
		if err != nil {
			log.Fatalf("merge: %v", err)
		}
		applyHeuristics(book)
		if err := writeOut(book, *format, *output); err != nil {
			log.Fatalf("write: %v", err)
		}
	case "fetch":
		feed, ok := config.SelectFeed(*feedName)
		if !ok || feed.FeedURL == "" {
			log.Fatal("fetch mode requires a configured feed with feedURL")
		}
		dir := feed.ArchiveDir
		if *input != "" {
			dir = *input
		}
		f := newFetcher(feed)
		if err := f.archive(dir, *count); err != nil {
			log.Fatalf("fetch: %v", err)
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func resolveInput(input, feedName string) string {
	if input != "" {
		return input
	}
	if feed, ok := config.SelectFeed(feedName); ok && feed.ArchiveDir != "" {
		return feed.ArchiveDir
	}
	log.Fatal("no snapshot directory; set -input or configure feeds[].archiveDir")
	return ""
}

// logifyArchive reads every snapshot under dir in name order and builds a
// logbook. With batchSize > 0 the stream is logified in windows of that many
// snapshots and the partial logbooks are merged, which exercises the same
// path an incremental pipeline would use.
func logifyArchive(dir string, batchSize int) (*tripify.Logbook, error) {
	snapshots, err := readArchive(dir)
	if err != nil {
		return nil, err
	}
	snapshots, diags := gtfsrt.CleanSnapshots(snapshots)
	agg := gtfsrt.NewDiagnosticAggregator()
	agg.AddAll(diags)
	agg.LogAll(dir)
	log.Printf("logifying %d snapshots from %s", len(snapshots), dir)

	if batchSize <= 0 {
		return tripify.Logify(snapshots)
	}

	var books []*tripify.Logbook
	for start := 0; start < len(snapshots); start += batchSize {
		end := start + batchSize
		if end > len(snapshots) {
			end = len(snapshots)
		}
		book, err := tripify.Logify(snapshots[start:end])
		if err != nil {
			return nil, fmt.Errorf("window starting at %d: %w", start, err)
		}
		books = append(books, book)
	}
	return ops.MergeLogbooks(books)
}

// mergeArchives builds one logbook per snapshot directory, each directory a
// time window, and merges them in order. A single directory is windowed by
// batchSize instead.
func mergeArchives(dirs []string, batchSize int) (*tripify.Logbook, error) {
	if len(dirs) == 1 {
		return logifyArchive(dirs[0], batchSize)
	}
	var books []*tripify.Logbook
	for _, dir := range dirs {
		book, err := logifyArchive(dir, 0)
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", dir, err)
		}
		books = append(books, book)
	}
	return ops.MergeLogbooks(books)
}

func applyHeuristics(book *tripify.Logbook) {
	h := config.Config.Heuristics
	if h.CutCancellations {
		exempt := make(map[string]bool, len(h.RouteExceptions))
		for _, r := range h.RouteExceptions {
			exempt[r] = true
		}
		ops.CutCancellations(book, ops.CancellationHeuristic{MaxUncorroboratedTail: h.MaxUncorroboratedTail}, exempt)
	}
	if h.DiscardPartialLogs {
		*book = *ops.DiscardPartialLogs(book)
	}
}

func writeOut(book *tripify.Logbook, format, path string) error {
	if format == "" {
		format = config.Config.Output.Format
	}
	if path == "" {
		path = config.Config.Output.Path
	}

	switch format {
	case "csv", "gtfs":
		w := os.Stdout
		if path != "" && path != "-" {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			w = f
		}
		if format == "csv" {
			return formatter.WriteCSV(w, book)
		}
		loc := time.UTC
		if tz := config.Config.Output.Timezone; tz != "" {
			l, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("timezone %q: %w", tz, err)
			}
			loc = l
		}
		return formatter.WriteStopTimesGTFS(w, book, loc)
	case "sqlite":
		if path == "" || path == "-" {
			return fmt.Errorf("sqlite output requires a file path")
		}
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return formatter.WriteSQL(context.Background(), db, book)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
