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
	defaultListenAddr     = ":3001"
	defaultLoggingLevel   = logger.LevelInfo
	defaultEnvironment    = logger.EnvProduction
	defaultIssuer         = "internal-auth"
	defaultAudience       = "internal-services"
	defaultAccessTokenTTL = 900
	defaultSigningKey     = "dev-secret-signing-key"
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the auth service will be run
	ListenAddr string

	// Environment (dev, prod)
	Environment string

	// Value of 'iss' claim of issued tokens
	Issuer string

	// Value of 'aud' claim of issued tokens; checked on verification
	Audience string

	// Access token lifetime in seconds; refresh tokens live 10 times longer
	AccessTokenTTL int

	// Shared secret to sign access tokens with HS256
	SigningKey string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:       defaultLoggingLevel,
		ListenAddr:     defaultListenAddr,
		Environment:    defaultEnvironment,
		Issuer:         defaultIssuer,
		Audience:       defaultAudience,
		AccessTokenTTL: defaultAccessTokenTTL,
		SigningKey:     defaultSigningKey,
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
	setTTL := func(value string) error {
		if value == "" {
			return nil
		}
		ttl, err := strconv.Atoi(value)
		if err != nil || ttl <= 0 {
			return fmt.Errorf("invalid AUTH_ACCESS_TOKEN_TTL %q, positive number of seconds expected", value)
		}
		c.AccessTokenTTL = ttl
		return nil
	}

	envMap := map[string]func(string) error{
		"PORT":                  setPort,
		"AUTH_ISSUER":           setString(&c.Issuer),
		"AUTH_AUDIENCE":         setString(&c.Audience),
		"AUTH_ACCESS_TOKEN_TTL": setTTL,
		"AUTH_SIGNING_KEY":      setString(&c.SigningKey),
		"LOG_LEVEL":             setString(&c.LogLevel),
		"ENVIRONMENT":           setString(&c.Environment),
	}

	var errs []error
	for key, parseFn := range envMap {
		errs = append(errs, parseFn(getenv(key)))
	}
	return errors.Join(errs...)
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("auth-api", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVar(&c.Issuer, "issuer", c.Issuer, "Token issuer")
	fs.StringVar(&c.Audience, "audience", c.Audience, "Token audience")
	fs.IntVar(&c.AccessTokenTTL, "access-ttl", c.AccessTokenTTL, "Access token TTL in seconds")
	fs.StringVarP(&c.SigningKey, "signing-key", "s", c.SigningKey, "Secret key to sign access tokens")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("access-ttl must be positive, got %d", c.AccessTokenTTL)
	}
	return nil
}
