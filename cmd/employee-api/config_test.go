package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("set default option", func(t *testing.T) {
		c := NewConfig()

		require.Equal(t, ":3002", c.ListenAddr, "default listen address not set")
		require.Equal(t, "info", c.LogLevel, "default log level not set")
		require.Equal(t, "prod", c.Environment, "default environment not set")
		require.False(t, c.AllowDuplicateEmail, "duplicates should be rejected by default")
	})

	t.Run("load env", func(t *testing.T) {
		c := NewConfig()
		env := map[string]string{
			"PORT":                           "4002",
			"EMPLOYEE_ALLOW_DUPLICATE_EMAIL": "true",
			"LOG_LEVEL":                      "warn",
			"ENVIRONMENT":                    "dev",
		}

		err := c.LoadEnv(func(key string) string { return env[key] })

		require.NoError(t, err)
		require.Equal(t, ":4002", c.ListenAddr)
		require.True(t, c.AllowDuplicateEmail)
		require.Equal(t, "warn", c.LogLevel)
		require.Equal(t, "dev", c.Environment)
	})

	t.Run("duplicate email toggle", func(t *testing.T) {
		tests := []struct {
			value    string
			expected bool
		}{
			{value: "true", expected: true},
			{value: "TRUE", expected: false},
			{value: "1", expected: false},
			{value: "false", expected: false},
		}

		for _, tt := range tests {
			t.Run(tt.value, func(t *testing.T) {
				c := NewConfig()

				err := c.LoadEnv(func(key string) string {
					if key == "EMPLOYEE_ALLOW_DUPLICATE_EMAIL" {
						return tt.value
					}
					return ""
				})

				require.NoError(t, err)
				require.Equal(t, tt.expected, c.AllowDuplicateEmail)
			})
		}
	})

	t.Run("invalid port", func(t *testing.T) {
		c := NewConfig()

		err := c.LoadEnv(func(key string) string {
			if key == "PORT" {
				return "99999"
			}
			return ""
		})

		require.Error(t, err)
	})

	t.Run("parse flags", func(t *testing.T) {
		c := NewConfig()

		err := c.ParseFlags([]string{
			"-a", "localhost:9000",
			"-l", "debug",
			"-e", "dev",
			"--allow-duplicate-email",
		})

		require.NoError(t, err)
		require.Equal(t, "localhost:9000", c.ListenAddr)
		require.Equal(t, "debug", c.LogLevel)
		require.Equal(t, "dev", c.Environment)
		require.True(t, c.AllowDuplicateEmail)
	})
}
