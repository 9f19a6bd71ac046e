package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"
)

type StoreConfig struct {
	Path string `json:"path" yaml:"path"`
}

type KafkaConfig struct {
	Enabled      bool          `json:"enabled" yaml:"enabled"`
	Brokers      []string      `json:"brokers" yaml:"brokers"`
	Topic        string        `json:"topic" yaml:"topic"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

type SinkConfig struct {
	APIBaseURL string        `json:"api_base_url" yaml:"api_base_url"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`
	Kafka      KafkaConfig   `json:"kafka" yaml:"kafka"`
}

type BatchConfig struct {
	Count     int           `json:"count" yaml:"count"`
	Delay     time.Duration `json:"delay" yaml:"delay"`
	KeepItems bool          `json:"keep_items" yaml:"keep_items"`
}

type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Driver  string `json:"driver" yaml:"driver"`
	DSN     string `json:"dsn" yaml:"dsn"`
}

type Config struct {
	LogLevel  string        `json:"log_level" yaml:"log_level"`
	LogFormat string        `json:"log_format" yaml:"log_format"`
	Store     StoreConfig   `json:"store" yaml:"store"`
	Sink      SinkConfig    `json:"sink" yaml:"sink"`
	Journal   JournalConfig `json:"journal" yaml:"journal"`
	Batch     BatchConfig   `json:"batch" yaml:"batch"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Store: StoreConfig{
			Path: "config.json",
		},
		Sink: SinkConfig{
			Timeout: 10 * time.Second,
			Kafka: KafkaConfig{
				Topic:        "security-events",
				WriteTimeout: 10 * time.Second,
			},
		},
		Journal: JournalConfig{
			Driver: "sqlite",
		},
		Batch: BatchConfig{
			Count: 10,
			Delay: 2 * time.Second,
		},
	}
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()

	trimmed := strings.TrimSpace(string(content))
	if len(trimmed) == 0 {
		return nil, errors.New("config file is empty")
	}
	var decodeErr error
	if looksLikeJSON(trimmed) {
		decodeErr = json.Unmarshal([]byte(trimmed), cfg)
	} else {
		decodeErr = yaml.Unmarshal([]byte(trimmed), cfg)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if path == "" || cfg == nil {
		return errors.New("config path or config is empty")
	}
	var data []byte
	var err error
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func looksLikeJSON(s string) bool {
	for _, ch := range s {
		if ch == '{' || ch == '[' {
			return true
		}
		if ch > ' ' {
			return false
		}
	}
	return false
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "config.json"
	}
	if cfg.Sink.Timeout <= 0 {
		cfg.Sink.Timeout = 10 * time.Second
	}
	if cfg.Sink.Kafka.Topic == "" {
		cfg.Sink.Kafka.Topic = "security-events"
	}
	if cfg.Sink.Kafka.WriteTimeout <= 0 {
		cfg.Sink.Kafka.WriteTimeout = 10 * time.Second
	}
	if cfg.Journal.Driver == "" {
		cfg.Journal.Driver = "sqlite"
	}
	if cfg.Batch.Count <= 0 {
		cfg.Batch.Count = 10
	}
	if cfg.Batch.Delay < 0 {
		cfg.Batch.Delay = 2 * time.Second
	}
}

func Validate(cfg *Config) error {
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.Sink.Kafka.Enabled && len(cfg.Sink.Kafka.Brokers) == 0 {
		return errors.New("sink.kafka.brokers required when sink.kafka.enabled is true")
	}
	if cfg.Sink.Kafka.Enabled && cfg.Sink.Kafka.Topic == "" {
		return errors.New("sink.kafka.topic required when sink.kafka.enabled is true")
	}
	if cfg.Journal.Enabled {
		switch strings.ToLower(cfg.Journal.Driver) {
		case "sqlite", "postgres", "postgresql":
		default:
			return fmt.Errorf("journal.driver must be sqlite or postgres, got %q", cfg.Journal.Driver)
		}
	}
	if cfg.Batch.Count <= 0 {
		return errors.New("batch.count must be > 0")
	}
	return nil
}

type Manager struct {
	path string
	cfg  atomic.Value
}

func NewManager(path string) (*Manager, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	m := &Manager{path: path}
	m.cfg.Store(cfg)
	return m, nil
}

func (m *Manager) Get() *Config {
	if v := m.cfg.Load(); v != nil {
		return v.(*Config)
	}
	return DefaultConfig()
}

func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) Reload() (*Config, error) {
	cfg, err := Load(m.path)
	if err != nil {
		return nil, err
	}
	m.cfg.Store(cfg)
	return cfg, nil
}

func (m *Manager) Update(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	if err := Save(m.path, cfg); err != nil {
		return err
	}
	m.cfg.Store(cfg)
	return nil
}

func ResolvePath(path string) string {
	if path == "" {
		return path
	}
	if filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(cwd, path)
}
