package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `{
		"host": "broker.example",
		"port": 8883,
		"topic": "sensors/#",
		"qos": 1,
		"tls": true,
		"output_file": "/tmp/diff.log"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "broker.example", cfg.Host)
	assert.Equal(t, 8883, cfg.Port)
	assert.Equal(t, "sensors/#", cfg.Topic)
	assert.Equal(t, 1, cfg.QoS)
	assert.True(t, cfg.TLS)
	assert.Equal(t, "/tmp/diff.log", cfg.OutputFile)
	// Untouched fields keep their defaults.
	assert.Equal(t, 60, cfg.Keepalive)
}

func TestLoadMissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("MQTT_HOST", "env-broker")
	t.Setenv("MQTT_TOPIC", "env/topic")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, "env-broker", cfg.Host)
	assert.Equal(t, "env/topic", cfg.Topic)
	assert.Equal(t, 1883, cfg.Port)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"host": "file-broker", "topic": "file/topic"}`)
	t.Setenv("MQTT_TOPIC", "env/topic")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-broker", cfg.Host)
	assert.Equal(t, "env/topic", cfg.Topic)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, `{not json`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestBrokerURI(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "Plain TCP",
			cfg:  Config{Host: "localhost", Port: 1883},
			want: "tcp://localhost:1883",
		},
		{
			name: "TLS",
			cfg:  Config{Host: "broker.example", Port: 8883, TLS: true},
			want: "ssl://broker.example:8883",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.BrokerURI())
		})
	}
}
