package logger_test

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	logpkg "github.com/matchday-hq/matchday-service/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *logpkg.LoggerConfig
		expectError bool
		wantLevel   zerolog.Level
	}{
		{
			name: "valid production environment",
			config: &logpkg.LoggerConfig{
				ServiceName:    "test-service",
				ServiceVersion: "1.0.0",
				Env:            "prod",
				Level:          "info",
				TimeField:      "timestamp",
				TimeFormat:     "unix",
				Fields:         map[string]interface{}{"key": "value"},
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name: "valid staging environment",
			config: &logpkg.LoggerConfig{
				ServiceName:    "test-service",
				ServiceVersion: "2.0.0",
				Env:            "staging",
				Level:          "warn",
				TimeFormat:     "unix",
				Stacktrace:     true,
			},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name: "valid development environment without debug",
			config: &logpkg.LoggerConfig{
				ServiceName: "test-service",
				Env:         "dev",
				Level:       "info",
				TimeFormat:  "unix",
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name: "invalid environment",
			config: &logpkg.LoggerConfig{
				ServiceName: "bad-service",
				Env:         "wrong-env",
				Level:       "debug",
			},
			expectError: true,
		},
		{
			name: "invalid log level",
			config: &logpkg.LoggerConfig{
				ServiceName: "test-service",
				Env:         "prod",
				Level:       "invalid-level",
			},
			expectError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := logpkg.New(test.config)
			if test.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.wantLevel, zerolog.GlobalLevel())
		})
	}

	t.Run("debug log file creation", func(t *testing.T) {
		config := &logpkg.LoggerConfig{
			ServiceName:    "integration-test",
			ServiceVersion: "1.0.0",
			Env:            "dev",
			Level:          "debug",
			TimeFormat:     "unix",
		}

		_, err := logpkg.New(config)
		assert.NoError(t, err)

		_, statErr := os.Stat("logs/debug.log")
		assert.NoError(t, statErr)

		t.Cleanup(func() {
			if err := os.Remove("logs/debug.log"); err != nil && !os.IsNotExist(err) {
				t.Logf("cleanup failed: %v", err)
			}
		})
	})
}
