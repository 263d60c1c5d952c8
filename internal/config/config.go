// Package config loads the comparator configuration from a JSON (or YAML)
// file with environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config mirrors the config file surface. Every field can also be set (or
// overridden) through its environment variable.
type Config struct {
	Host        string `json:"host" yaml:"host" env:"MQTT_HOST" env-default:"localhost"`
	Port        int    `json:"port" yaml:"port" env:"MQTT_PORT" env-default:"1883"`
	Keepalive   int    `json:"keepalive" yaml:"keepalive" env:"MQTT_KEEPALIVE" env-default:"60"`
	ClientID    string `json:"client_id" yaml:"client_id" env:"MQTT_CLIENT_ID"`
	Username    string `json:"username" yaml:"username" env:"MQTT_USERNAME"`
	Password    string `json:"password" yaml:"password" env:"MQTT_PASSWORD"`
	Topic       string `json:"topic" yaml:"topic" env:"MQTT_TOPIC" env-default:"#"`
	QoS         int    `json:"qos" yaml:"qos" env:"MQTT_QOS" env-default:"0"`
	TLS         bool   `json:"tls" yaml:"tls" env:"MQTT_TLS"`
	OutputFile  string `json:"output_file" yaml:"output_file" env:"OUTPUT_FILE"`
	MetricsAddr string `json:"metrics_addr" yaml:"metrics_addr" env:"METRICS_ADDR"`
}

// Load reads the config file at path and applies environment overrides. A
// missing file is not an error; the environment alone then configures the
// client.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); err != nil {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config from environment: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config from environment: %w", err)
	}
	return cfg, nil
}

// BrokerURI renders the paho broker address, honoring the TLS flag.
func (c *Config) BrokerURI() string {
	scheme := "tcp"
	if c.TLS {
		scheme = "ssl"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}
