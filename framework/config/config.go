package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/km-arc/go-utilities/framework/password"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the central typed configuration struct.
type Config struct {
	App      AppConfig
	Log      LogConfig
	Password PasswordConfig
}

type AppConfig struct {
	Name            string        `env:"APP_NAME"             envDefault:"GoUtilities"`
	Env             string        `env:"APP_ENV"              envDefault:"local"` // local | production | testing
	Debug           bool          `env:"APP_DEBUG"            envDefault:"true"`
	Host            string        `env:"APP_HOST"             envDefault:""`
	Port            string        `env:"APP_PORT"             envDefault:"8000"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Addr is the listen address, host:port.
func (a AppConfig) Addr() string { return a.Host + ":" + a.Port }

type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"` // debug | info | warn | error
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json | text
}

// PasswordConfig holds the policy applied when a request leaves a field out,
// plus limits for the password endpoint.
type PasswordConfig struct {
	Length            int  `env:"PASSWORD_LENGTH"              envDefault:"12"`
	UniqueChars       int  `env:"PASSWORD_UNIQUE_CHARS"        envDefault:"5"`
	RequireLowercase  bool `env:"PASSWORD_REQUIRE_LOWERCASE"   envDefault:"true"`
	RequireUppercase  bool `env:"PASSWORD_REQUIRE_UPPERCASE"   envDefault:"true"`
	RequireDigit      bool `env:"PASSWORD_REQUIRE_DIGIT"       envDefault:"true"`
	RequireSpecial    bool `env:"PASSWORD_REQUIRE_SPECIAL"     envDefault:"false"`
	MaxFillIterations int  `env:"PASSWORD_MAX_FILL_ITERATIONS" envDefault:"0"`
	HashCost          int  `env:"PASSWORD_HASH_COST"           envDefault:"10"`
	MaxLength         int  `env:"PASSWORD_MAX_LENGTH"          envDefault:"1024"`
	MaxCount          int  `env:"PASSWORD_MAX_COUNT"           envDefault:"50"`
}

// Policy converts the configured defaults to a password.Policy.
func (p PasswordConfig) Policy() password.Policy {
	return password.Policy{
		RequiredLength:         p.Length,
		RequiredUniqueChars:    p.UniqueChars,
		RequireLowercase:       p.RequireLowercase,
		RequireUppercase:       p.RequireUppercase,
		RequireDigit:           p.RequireDigit,
		RequireNonAlphanumeric: p.RequireSpecial,
	}
}

// Load reads the given .env files (".env" when none are named) and
// populates a Config from them and the process environment. Process
// variables win over file values. A missing default .env is not an error.
// Call once at bootstrap: cfg, err := config.Load()
func Load(envFiles ...string) (*Config, error) {
	vars, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}
	maps.Copy(vars, env.ToMap(os.Environ()))

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(envFiles ...string) *Config {
	cfg, err := Load(envFiles...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func readEnvFiles(files []string) (map[string]string, error) {
	if len(files) == 0 {
		vars, err := godotenv.Read(".env")
		if errors.Is(err, fs.ErrNotExist) {
			// Non-fatal: .env may not exist in production
			return map[string]string{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("config: read .env: %w", err)
		}
		return vars, nil
	}
	vars, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("config: read env files: %w", err)
	}
	return vars, nil
}

// ── Validation ──────────────────────────────────────────────────────────────

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate checks value ranges Load cannot express in tags.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.App.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: APP_PORT %q is not a port number", ErrInvalid, c.App.Port)
	}
	if c.App.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: APP_SHUTDOWN_TIMEOUT %s is negative", ErrInvalid, c.App.ShutdownTimeout)
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("%w: LOG_LEVEL %q, want one of %v", ErrInvalid, c.Log.Level, logLevels)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("%w: LOG_FORMAT %q, want one of %v", ErrInvalid, c.Log.Format, logFormats)
	}

	pw := c.Password
	if err := pw.Policy().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if pw.HashCost != 0 && (pw.HashCost < bcrypt.MinCost || pw.HashCost > bcrypt.MaxCost) {
		return fmt.Errorf("%w: PASSWORD_HASH_COST %d outside [%d, %d]", ErrInvalid, pw.HashCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if pw.MaxLength < pw.Length {
		return fmt.Errorf("%w: PASSWORD_MAX_LENGTH %d is below PASSWORD_LENGTH %d", ErrInvalid, pw.MaxLength, pw.Length)
	}
	if pw.MaxCount < 1 {
		return fmt.Errorf("%w: PASSWORD_MAX_COUNT %d, want at least 1", ErrInvalid, pw.MaxCount)
	}
	return nil
}
