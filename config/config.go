package config

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	mu sync.Mutex `yaml:"-"`

	Plant        string `yaml:"plant"`
	CellID       string `yaml:"cell_id"`
	DatabasePath string `yaml:"database_path"`

	Simulation SimulationConfig `yaml:"simulation"`
	Web        WebConfig        `yaml:"web"`
	Messaging  MessagingConfig  `yaml:"messaging"`
}

// SimulationConfig defines the digital-twin tick loop and interlock thresholds.
type SimulationConfig struct {
	Seed                 int64         `yaml:"seed"`
	TickInterval         time.Duration `yaml:"tick_interval"`
	MaintenanceThreshold float64       `yaml:"maintenance_threshold"` // health below this forces a running machine into maintenance
	ToolLifeFloor        float64       `yaml:"tool_life_floor"`       // remaining life below this blocks production on the mounted tool
	LowOEEThreshold      float64       `yaml:"low_oee_threshold"`     // OEE below this penalizes predicted remaining life
}

// WebConfig defines the web server settings.
type WebConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	SessionSecret string `yaml:"session_secret"`
}

// MessagingConfig defines the messaging backend.
type MessagingConfig struct {
	Backend             string        `yaml:"backend" json:"backend"` // "mqtt" or "kafka"
	MQTT                MQTTConfig    `yaml:"mqtt" json:"mqtt"`
	Kafka               KafkaConfig   `yaml:"kafka" json:"kafka"`
	QualityTopic        string        `yaml:"quality_topic" json:"quality_topic"`
	TwinTopic           string        `yaml:"twin_topic" json:"twin_topic"`
	CommandTopic        string        `yaml:"command_topic" json:"command_topic"`
	OutboxDrainInterval time.Duration `yaml:"outbox_drain_interval" json:"outbox_drain_interval"`
	NodeID              string        `yaml:"node_id" json:"node_id"`
}

// MQTTConfig defines MQTT broker settings.
type MQTTConfig struct {
	Broker   string `yaml:"broker" json:"broker"`
	Port     int    `yaml:"port" json:"port"`
	ClientID string `yaml:"client_id" json:"client_id"`
}

// KafkaConfig defines Kafka broker settings.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers" json:"brokers"`
	GroupID string   `yaml:"group_id" json:"group_id"`
}

// Defaults returns a Config with sane defaults.
func Defaults() *Config {
	return &Config{
		Plant:        "plant-a",
		CellID:       "cell-1",
		DatabasePath: "zeroedge.db",
		Simulation: SimulationConfig{
			Seed:                 1,
			TickInterval:         5 * time.Second,
			MaintenanceThreshold: 20,
			ToolLifeFloor:        5,
			LowOEEThreshold:      70,
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 8090,
		},
		Messaging: MessagingConfig{
			Backend:             "mqtt",
			QualityTopic:        "zeroedge/quality",
			TwinTopic:           "zeroedge/twin",
			CommandTopic:        "zeroedge/commands",
			OutboxDrainInterval: 5 * time.Second,
			MQTT: MQTTConfig{
				Broker: "localhost",
				Port:   1883,
			},
		},
	}
}

// Load reads a YAML config file. If the file doesn't exist, defaults are used.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to a YAML file.
func (c *Config) Save(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// NodeID returns the configured node ID, or derives one from plant.cell_id.
func (c *Config) NodeID() string {
	if c.Messaging.NodeID != "" {
		return c.Messaging.NodeID
	}
	return c.Plant + "." + c.CellID
}

// Lock acquires the config mutex for multi-step mutations.
func (c *Config) Lock() { c.mu.Lock() }

// Unlock releases the config mutex.
func (c *Config) Unlock() { c.mu.Unlock() }
