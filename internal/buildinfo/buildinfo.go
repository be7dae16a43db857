package buildinfo

import "time"

// Set via -ldflags at build time
var (
	Version    = "dev" // release tag
	BuildTime  string  // when the binary was compiled
	CommitHash string  // short git commit hash
)

// StartTime is recorded when the process starts
var StartTime = time.Now().UTC().Format(time.RFC3339)
