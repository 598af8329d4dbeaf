// Package config loads the service's environment-variable configuration
// (spec §6), optionally overlaid by a local .env file the way
// haricheung-agentic-shell/cmd/agsh/main.go loads one ahead of reading
// os.Getenv: `_ = godotenv.Load(".env")`, ignoring a missing file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the service's full environment-derived configuration (spec
// §6's five env vars).
type Config struct {
	ServiceURL    string
	Threads       int
	NumWalk       int
	ZeroNode      string
	TopNodesLimit int
}

// Load reads the environment, first overlaying a .env file in the working
// directory if one is present (a missing file is not an error). Unset or
// unparsable numeric vars fall back to spec.md §6's defaults.
func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		ServiceURL:    getString("SERVICE_URL", "tcp://127.0.0.1:10234"),
		Threads:       getInt("SERVICE_THREADS", 1),
		NumWalk:       getInt("NUM_WALK", 10000),
		ZeroNode:      getString("ZERO_NODE", "U000000000000"),
		TopNodesLimit: getInt("TOP_NODES_LIMIT", 100),
	}
}

func getString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}
