// Package config loads process configuration from the environment,
// following the teacher's pkg/config (Config struct + getEnv helpers)
// extended with spec §6's option table.
package config

import "os"

// Config holds every environment-equivalent option spec §6 names.
type Config struct {
	Port string

	GraphURI      string
	GraphUsername string
	GraphPassword string
	GraphDatabase string

	BlobBucket string
	AWSRegion  string

	IndexerEventBusName string // empty disables background indexing
	IndexerSource       string

	OTLPEndpoint string
	Development  bool
}

// Load reads Config from the environment, applying the same defaults the
// teacher's getEnv helper does for unset keys.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		GraphURI:      getEnv("GRAPH_URI", "bolt://localhost:7687"),
		GraphUsername: getEnv("GRAPH_USERNAME", "neo4j"),
		GraphPassword: getEnv("GRAPH_PASSWORD", ""),
		GraphDatabase: getEnv("GRAPH_DATABASE", ""),

		BlobBucket: getEnv("BLOB_BUCKET", ""),
		AWSRegion:  getEnv("AWS_REGION", "us-east-1"),

		IndexerEventBusName: getEnv("INDEXER_EVENT_BUS", ""),
		IndexerSource:       getEnv("INDEXER_SOURCE", "corpusgraph"),

		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
		Development:  getEnv("ENVIRONMENT", "production") == "development",
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
