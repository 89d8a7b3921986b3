package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// 无配置文件时全部回落到默认值
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Device)
	assert.Equal(t, 460800, cfg.Serial.BaudRate)
	assert.Equal(t, 100*time.Millisecond, cfg.Serial.ReadTimeout)

	assert.False(t, cfg.Driver.Motomed)
	assert.Equal(t, 500*time.Millisecond, cfg.Driver.WatchdogInterval)
	assert.Equal(t, 1200*time.Millisecond, cfg.Driver.LivenessWindow)
	assert.Equal(t, 2*time.Second, cfg.Driver.AckTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.Driver.ReaderPoll)
	assert.Equal(t, 100, cfg.Driver.ActualValuesCapacity)
	assert.Equal(t, 1, cfg.Driver.PhaseResultCapacity)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enable)
}

func TestLoadExampleFile(t *testing.T) {
	cfg, err := Load("../../configs/example.yaml")
	require.NoError(t, err)

	assert.Equal(t, "rehastim-driver", cfg.App.Name)
	assert.Equal(t, 500*time.Millisecond, cfg.Driver.WatchdogInterval)
	assert.Equal(t, ":9105", cfg.Metrics.Addr)
	assert.Equal(t, "logs/rehastim.log", cfg.Logging.File.Filename)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}
