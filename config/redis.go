package config

import (
	"strings"
	"time"
)

const (
	defaultSessionRetention = 7 * 24 * time.Hour
	minSessionRetention     = 5 * time.Minute
)

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelPort       string   `env:"SENTINEL_PORT"        envDefault:"26379"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// SessionConfig controls how admin sessions are kept in Redis.
type SessionConfig struct {
	// Retention is how long an idle session record is kept before Redis drops it.
	// It is storage housekeeping only; credential validity is decided by the backend.
	Retention time.Duration `env:"RETENTION" envDefault:"168h"`

	// KeyPrefix namespaces session keys.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"session:"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.Retention <= 0 {
		s.Retention = defaultSessionRetention
	}
	if s.Retention < minSessionRetention {
		s.Retention = minSessionRetention
	}
	s.KeyPrefix = strings.TrimSpace(s.KeyPrefix)
	if s.KeyPrefix == "" {
		s.KeyPrefix = "session:"
	}
}
