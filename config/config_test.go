package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.TickInterval != 5*time.Second {
		t.Fatalf("tick interval = %v, want 5s", cfg.Simulation.TickInterval)
	}
	if cfg.Simulation.MaintenanceThreshold != 20 || cfg.Simulation.ToolLifeFloor != 5 {
		t.Fatalf("thresholds = %v/%v, want 20/5", cfg.Simulation.MaintenanceThreshold, cfg.Simulation.ToolLifeFloor)
	}
	if cfg.Messaging.Backend != "mqtt" {
		t.Fatalf("backend = %s, want mqtt", cfg.Messaging.Backend)
	}
	if cfg.Messaging.CommandTopic != "zeroedge/commands" {
		t.Fatalf("command topic = %s, want zeroedge/commands", cfg.Messaging.CommandTopic)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zeroedge.yaml")

	cfg := Defaults()
	cfg.Plant = "plant-x"
	cfg.CellID = "cell-9"
	cfg.Simulation.Seed = 4242
	cfg.Simulation.TickInterval = 250 * time.Millisecond
	cfg.Messaging.Backend = "kafka"
	cfg.Messaging.Kafka.Brokers = []string{"broker1:9092", "broker2:9092"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Plant != "plant-x" || loaded.CellID != "cell-9" {
		t.Fatalf("identity = %s/%s", loaded.Plant, loaded.CellID)
	}
	if loaded.Simulation.Seed != 4242 || loaded.Simulation.TickInterval != 250*time.Millisecond {
		t.Fatalf("simulation = %+v", loaded.Simulation)
	}
	if loaded.Messaging.Backend != "kafka" || len(loaded.Messaging.Kafka.Brokers) != 2 {
		t.Fatalf("messaging = %+v", loaded.Messaging)
	}
}

func TestNodeID(t *testing.T) {
	cfg := Defaults()
	if got := cfg.NodeID(); got != "plant-a.cell-1" {
		t.Fatalf("derived node ID = %s, want plant-a.cell-1", got)
	}
	cfg.Messaging.NodeID = "edge-007"
	if got := cfg.NodeID(); got != "edge-007" {
		t.Fatalf("node ID = %s, want edge-007", got)
	}
}
