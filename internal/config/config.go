package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProbeConfig holds the NATS connection details shared by the probe
// publisher and the engine subscriber.
type ProbeConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// TextWriterConfig configures the plain-text report writer.
type TextWriterConfig struct {
	RootPath string `yaml:"root_path"`
}

// GobWriterConfig configures the gob archive writer.
type GobWriterConfig struct {
	RootPath string `yaml:"root_path"`
}

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// WriterDef defines a single snapshot writer. Only the section matching
// Type is read.
type WriterDef struct {
	Type       string           `yaml:"type"`
	Enabled    bool             `yaml:"enabled"`
	Text       TextWriterConfig `yaml:"text"`
	Gob        GobWriterConfig  `yaml:"gob"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
}

// CollectorConfig holds the configuration for the streaming collector.
type CollectorConfig struct {
	SnapshotInterval   string      `yaml:"snapshot_interval"`
	MaxBins            uint64      `yaml:"max_bins"`
	SizeOfInputChannel int         `yaml:"size_of_input_channel"`
	Writers            []WriterDef `yaml:"writers"`
}

// AlerterRule defines a single threshold rule evaluated per snapshot.
type AlerterRule struct {
	Name      string  `yaml:"name"`
	Metric    string  `yaml:"metric"`
	Operator  string  `yaml:"operator"`
	Threshold float64 `yaml:"threshold"`
}

// AlerterConfig holds the configuration for the snapshot alerter.
type AlerterConfig struct {
	Enabled bool          `yaml:"enabled"`
	Rules   []AlerterRule `yaml:"rules"`
}

// SMTPConfig holds email notification settings.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// APIConfig holds the query API settings.
type APIConfig struct {
	HTTPListenAddr string           `yaml:"http_listen_addr"`
	ClickHouse     ClickHouseConfig `yaml:"clickhouse"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Probe     ProbeConfig     `yaml:"probe"`
	Collector CollectorConfig `yaml:"collector"`
	Alerter   AlerterConfig   `yaml:"alerter"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	API       APIConfig       `yaml:"api"`
}

// LoadConfig reads the configuration from a YAML file and returns a Config struct.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	return &cfg, nil
}
