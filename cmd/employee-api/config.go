package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/logger"
)

const (
	defaultListenAddr   = ":3002"
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvProduction
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the employee service will be run
	ListenAddr string

	// Environment (dev, prod)
	Environment string

	// Let several employees share one email
	AllowDuplicateEmail bool
}

func NewConfig() *Config {
	return &Config{
		LogLevel:    defaultLoggingLevel,
		ListenAddr:  defaultListenAddr,
		Environment: defaultEnvironment,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		return c.LoadEnv(func(key string) string {
			return envMap[key]
		})
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) error {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) error {
		return func(value string) error {
			if value != "" {
				*o = value
			}
			return nil
		}
	}
	setPort := func(value string) error {
		if value == "" {
			return nil
		}
		if _, err := strconv.ParseUint(value, 10, 16); err != nil {
			return fmt.Errorf("invalid PORT %q", value)
		}
		c.ListenAddr = ":" + value
		return nil
	}
	// Only exact "true" enables the policy
	setAllowDuplicates := func(value string) error {
		if value != "" {
			c.AllowDuplicateEmail = value == "true"
		}
		return nil
	}

	envMap := map[string]func(string) error{
		"PORT":                           setPort,
		"EMPLOYEE_ALLOW_DUPLICATE_EMAIL": setAllowDuplicates,
		"LOG_LEVEL":                      setString(&c.LogLevel),
		"ENVIRONMENT":                    setString(&c.Environment),
	}

	var errs []error
	for key, parseFn := range envMap {
		errs = append(errs, parseFn(getenv(key)))
	}
	return errors.Join(errs...)
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("employee-api", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.BoolVar(&c.AllowDuplicateEmail, "allow-duplicate-email", c.AllowDuplicateEmail, "Allow employees to share email")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")

	return fs.Parse(args)
}
