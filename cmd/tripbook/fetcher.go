package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/config"
	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/gtfsrt"
)

// fetcher polls a GTFS-RT endpoint and archives raw protobuf snapshots.
// This is CLI-specific logic and is not part of the core library.
type fetcher struct {
	feed       config.FeedConfig
	httpClient *http.Client
}

func newFetcher(feed config.FeedConfig) *fetcher {
	return &fetcher{
		feed: feed,
		httpClient: &http.Client{
			Timeout: time.Duration(feed.TimeoutMS) * time.Millisecond,
		},
	}
}

// fetch fetches the feed once and returns raw protobuf bytes.
func (f *fetcher) fetch() ([]byte, error) {
	resp, err := f.httpClient.Get(f.feed.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", f.feed.FeedURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, f.feed.FeedURL)
	}

	return io.ReadAll(resp.Body)
}

// archive fetches count snapshots, one per read interval, and writes each to
// dir under a UTC timestamp name so a later directory read preserves feed
// order.
func (f *fetcher) archive(dir string, count int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	interval := time.Duration(f.feed.ReadIntervalMS) * time.Millisecond
	for i := 0; i < count; i++ {
		if i > 0 {
			time.Sleep(interval)
		}
		b, err := f.fetch()
		if err != nil {
			log.Printf("fetch %d/%d: %v", i+1, count, err)
			continue
		}
		name := filepath.Join(dir, time.Now().UTC().Format("20060102T150405")+".pb")
		if err := os.WriteFile(name, b, 0o644); err != nil {
			return err
		}
		log.Printf("archived %s (%d bytes)", name, len(b))
	}
	return nil
}

// readArchive decodes every .pb file under dir, in name order.
func readArchive(dir string) ([]*gtfsrt.Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pb") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	snapshots := make([]*gtfsrt.Snapshot, 0, len(names))
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		s, err := gtfsrt.ParseFeed(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}
