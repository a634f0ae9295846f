package config

import (
	"testing"
	"time"

	"github.com/dossier-ai/dossier/internal/organize"
)

func TestServerConfigDefaults(t *testing.T) {
	var cfg ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.ReadTimeoutDuration() != time.Minute {
		t.Errorf("read timeout = %v", cfg.ReadTimeoutDuration())
	}
	if cfg.WriteTimeoutDuration() != 15*time.Minute {
		t.Errorf("write timeout = %v", cfg.WriteTimeoutDuration())
	}
}

func TestServerConfigEnvOverride(t *testing.T) {
	t.Setenv(EnvServerHost, "127.0.0.1")
	t.Setenv(EnvServerPort, "9000")

	var cfg ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestServerConfigInvalidPort(t *testing.T) {
	cfg := ServerConfig{Port: 99999}
	if err := cfg.Finalize(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestPipelineConfigDefaults(t *testing.T) {
	var cfg PipelineConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.InputFolder != "documents/incoming" || cfg.OutputFolder != "documents/sorted" {
		t.Errorf("folders = %q, %q", cfg.InputFolder, cfg.OutputFolder)
	}
	if cfg.Mode != organize.ModeCopy {
		t.Errorf("mode = %q, want copy", cfg.Mode)
	}
	if cfg.BatchLimit != 4 || cfg.PreviewLimit != 2000 || cfg.MaxImages != 3 {
		t.Errorf("limits = %d/%d/%d", cfg.BatchLimit, cfg.PreviewLimit, cfg.MaxImages)
	}
}

func TestPipelineConfigInvalidMode(t *testing.T) {
	cfg := PipelineConfig{Mode: "link"}
	if err := cfg.Finalize(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestPipelineConfigMerge(t *testing.T) {
	base := PipelineConfig{}
	base.Finalize()

	base.Merge(&PipelineConfig{Mode: organize.ModeMove, BatchLimit: 8})

	if base.Mode != organize.ModeMove {
		t.Errorf("mode = %q, want move", base.Mode)
	}
	if base.BatchLimit != 8 {
		t.Errorf("batch limit = %d, want 8", base.BatchLimit)
	}
	if base.InputFolder != "documents/incoming" {
		t.Errorf("merge must not clear unset fields, input folder = %q", base.InputFolder)
	}
}

func TestQueueConfigDefaults(t *testing.T) {
	var cfg QueueConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.URL != "nats://localhost:4222" {
		t.Errorf("url = %q", cfg.URL)
	}
	if cfg.Subject != "dossier.classify" || cfg.Group != "workers" {
		t.Errorf("subject/group = %q/%q", cfg.Subject, cfg.Group)
	}
	if cfg.TimeoutDuration() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.TimeoutDuration())
	}
	if cfg.ReconnectWaitDuration() != 2*time.Second {
		t.Errorf("reconnect wait = %v", cfg.ReconnectWaitDuration())
	}
}

func TestQueueConfigEnvOverride(t *testing.T) {
	t.Setenv(EnvQueueURL, "nats://broker:4222")
	t.Setenv(EnvQueueSubject, "dossier.test")

	var cfg QueueConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.URL != "nats://broker:4222" || cfg.Subject != "dossier.test" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfigTopLevelDefaults(t *testing.T) {
	cfg := Config{}
	cfg.loadDefaults()

	if cfg.ShutdownTimeout != "30s" {
		t.Errorf("shutdown timeout = %q", cfg.ShutdownTimeout)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("duration = %v", cfg.ShutdownTimeoutDuration())
	}
}

func TestConfigMerge(t *testing.T) {
	base := Config{ShutdownTimeout: "30s", Version: "0.1.0"}
	base.Merge(&Config{Version: "0.2.0"})

	if base.Version != "0.2.0" {
		t.Errorf("version = %q, want 0.2.0", base.Version)
	}
	if base.ShutdownTimeout != "30s" {
		t.Errorf("merge must not clear shutdown timeout, got %q", base.ShutdownTimeout)
	}
}
