package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvQueueURL           = "DOSSIER_QUEUE_URL"
	EnvQueueSubject       = "DOSSIER_QUEUE_SUBJECT"
	EnvQueueGroup         = "DOSSIER_QUEUE_GROUP"
	EnvQueueTimeout       = "DOSSIER_QUEUE_TIMEOUT"
	EnvQueueReconnectWait = "DOSSIER_QUEUE_RECONNECT_WAIT"
	EnvQueueMaxReconnects = "DOSSIER_QUEUE_MAX_RECONNECTS"
)

// QueueConfig holds NATS connection and subscription parameters.
type QueueConfig struct {
	URL           string `toml:"url"`
	Subject       string `toml:"subject"`
	Group         string `toml:"group"`
	Timeout       string `toml:"timeout"`
	ReconnectWait string `toml:"reconnect_wait"`
	MaxReconnects int    `toml:"max_reconnects"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *QueueConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// ReconnectWaitDuration returns ReconnectWait as a time.Duration.
func (c *QueueConfig) ReconnectWaitDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReconnectWait)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *QueueConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *QueueConfig) Merge(overlay *QueueConfig) {
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.Subject != "" {
		c.Subject = overlay.Subject
	}
	if overlay.Group != "" {
		c.Group = overlay.Group
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.ReconnectWait != "" {
		c.ReconnectWait = overlay.ReconnectWait
	}
	if overlay.MaxReconnects != 0 {
		c.MaxReconnects = overlay.MaxReconnects
	}
}

func (c *QueueConfig) loadDefaults() {
	if c.URL == "" {
		c.URL = "nats://localhost:4222"
	}
	if c.Subject == "" {
		c.Subject = "dossier.classify"
	}
	if c.Group == "" {
		c.Group = "workers"
	}
	if c.Timeout == "" {
		c.Timeout = "5s"
	}
	if c.ReconnectWait == "" {
		c.ReconnectWait = "2s"
	}
	if c.MaxReconnects == 0 {
		c.MaxReconnects = 60
	}
}

func (c *QueueConfig) loadEnv() {
	if v := os.Getenv(EnvQueueURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvQueueSubject); v != "" {
		c.Subject = v
	}
	if v := os.Getenv(EnvQueueGroup); v != "" {
		c.Group = v
	}
	if v := os.Getenv(EnvQueueTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvQueueReconnectWait); v != "" {
		c.ReconnectWait = v
	}
	if v := os.Getenv(EnvQueueMaxReconnects); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxReconnects = n
		}
	}
}

func (c *QueueConfig) validate() error {
	if c.Subject == "" {
		return fmt.Errorf("subject required")
	}
	if c.Group == "" {
		return fmt.Errorf("group required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ReconnectWait); err != nil {
		return fmt.Errorf("invalid reconnect_wait: %w", err)
	}
	return nil
}
