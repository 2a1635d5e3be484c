package config

// FeedConfig describes where GTFS-Realtime snapshots come from.
type FeedConfig struct {
	Name string `yaml:"name" validate:"required"`
	// URL of a live GTFS-Realtime endpoint, used when polling.
	FeedURL string `yaml:"feedURL" validate:"omitempty,url"`
	// Directory of archived protobuf snapshot files, read in name order.
	ArchiveDir     string `yaml:"archiveDir" validate:"omitempty,dir"`
	ReadIntervalMS int    `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
}

// HeuristicsConfig tunes the post-processing passes applied to a logbook.
type HeuristicsConfig struct {
	CutCancellations bool `yaml:"cutCancellations"`
	// Number of trailing uncorroborated stops a trip may keep before its
	// tail is treated as a cancellation artefact.
	MaxUncorroboratedTail int `yaml:"maxUncorroboratedTail" validate:"gte=0"`
	// Routes whose trips are never cut, e.g. express services that report
	// long stretches without vehicle confirmation.
	RouteExceptions    []string `yaml:"routeExceptions"`
	DiscardPartialLogs bool     `yaml:"discardPartialLogs"`
}

// OutputConfig selects the serialization target.
type OutputConfig struct {
	Format string `yaml:"format" validate:"omitempty,oneof=csv gtfs sqlite"`
	Path   string `yaml:"path"`
	// IANA timezone name used when rendering clock times, e.g. America/New_York.
	Timezone string `yaml:"timezone"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Feeds      []FeedConfig     `yaml:"feeds"`
	Heuristics HeuristicsConfig `yaml:"heuristics"`
	Output     OutputConfig     `yaml:"output"`
}
