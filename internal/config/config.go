// Package config loads symcalc's server settings (bind address, history
// persistence, JWT signing secret, evaluator precision) from a TOML
// file via BurntSushi/toml, generalized from server/config.go's
// Config/Database pairing, which loaded a TunaQuest server's DB
// connection and token secret the same way.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DBType selects the backing store for internal/history.
type DBType string

const (
	DatabaseNone     DBType = "none"
	DatabaseSQLite   DBType = "sqlite"
	DatabaseInMemory DBType = "inmem"
)

func (t DBType) String() string {
	return string(t)
}

// ParseDBType converts a config or flag value to a DBType, rejecting
// anything besides "sqlite" and "inmem".
func ParseDBType(s string) (DBType, error) {
	normalized := strings.ToLower(s)
	if normalized == DatabaseSQLite.String() {
		return DatabaseSQLite, nil
	}
	if normalized == DatabaseInMemory.String() {
		return DatabaseInMemory, nil
	}
	return DatabaseNone, fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
}

const (
	MaxSecretSize = 64
	MinSecretSize = 32
)

// Config is the full set of settings that govern a symcalc server run.
// Zero-valued fields are filled with defaults by FillDefaults.
type Config struct {
	// Listen is the bind address for internal/api's HTTP server, e.g.
	// "localhost:8080" or ":8080".
	Listen string `toml:"listen"`

	// Precision is the number of decimal places internal/symexpr.Evaluate
	// rounds its results to. 0 means use the package default.
	Precision int `toml:"precision"`

	// TokenSecret signs the JWTs internal/api issues. If empty,
	// FillDefaults substitutes a clearly-marked development secret.
	TokenSecret string `toml:"token_secret"`

	// OperatorUser and OperatorPasswordHash are the single API login
	// credential; the hash is a bcrypt hash, never a plaintext password.
	OperatorUser         string `toml:"operator_user"`
	OperatorPasswordHash string `toml:"operator_password_hash"`

	// HistoryDB selects and configures the internal/history backing
	// store.
	HistoryDB Database `toml:"history_db"`

	// UnauthDelayMillis is extra latency added before responding to an
	// unauthenticated or unauthorized request, to deprioritize abusive
	// clients. Negative disables the delay.
	UnauthDelayMillis int `toml:"unauth_delay_millis"`
}

// Database configures a internal/history persistence backend.
type Database struct {
	Type    DBType `toml:"type"`
	DataDir string `toml:"data_dir"`
}

func (db Database) Validate() error {
	if db.Type == DatabaseSQLite && db.DataDir == "" {
		return fmt.Errorf("data_dir not set")
	}
	if db.Type == DatabaseInMemory || db.Type == DatabaseSQLite {
		return nil
	}
	if db.Type == DatabaseNone {
		return fmt.Errorf("'none' DB is not valid")
	}
	return fmt.Errorf("unknown database type: %q", db.Type.String())
}

// UnauthDelay returns the configured delay as a time.Duration.
func (cfg Config) UnauthDelay() time.Duration {
	if cfg.UnauthDelayMillis < 1 {
		return 0
	}
	return time.Millisecond * time.Duration(cfg.UnauthDelayMillis)
}

// defaultConfig holds the values FillDefaults substitutes for any
// zero-valued field.
var defaultConfig = Config{
	Listen:            "localhost:8080",
	Precision:         15,
	TokenSecret:       "DEFAULT_TOKEN_SECRET-DO_NOT_USE_IN_PROD!",
	HistoryDB:         Database{Type: DatabaseInMemory},
	UnauthDelayMillis: 1000,
}

// FillDefaults returns a copy of cfg with every zero-valued field
// replaced by the matching field in defaultConfig.
func (cfg Config) FillDefaults() Config {
	out := cfg

	if out.Listen == "" {
		out.Listen = defaultConfig.Listen
	}
	if out.Precision == 0 {
		out.Precision = defaultConfig.Precision
	}
	if out.TokenSecret == "" {
		out.TokenSecret = defaultConfig.TokenSecret
	}
	if out.HistoryDB.Type == "" {
		out.HistoryDB = defaultConfig.HistoryDB
	}
	if out.UnauthDelayMillis == 0 {
		out.UnauthDelayMillis = defaultConfig.UnauthDelayMillis
	}

	return out
}

// Validate returns an error if cfg has invalid field values. Call
// FillDefaults first if defaults are meant to satisfy unset fields.
func (cfg Config) Validate() error {
	secretLen := len(cfg.TokenSecret)
	if secretLen < MinSecretSize || secretLen > MaxSecretSize {
		return fmt.Errorf("token_secret: must be between %d and %d bytes, but is %d", MinSecretSize, MaxSecretSize, secretLen)
	}
	if err := cfg.HistoryDB.Validate(); err != nil {
		return fmt.Errorf("history_db: %w", err)
	}
	return nil
}

// Load reads and parses the TOML config file at path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path if it is non-empty and the
// file exists, otherwise returns a defaulted Config. This lets
// cmd/symcalc run without requiring a config file for simple REPL use.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Config{}.FillDefaults(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}.FillDefaults(), nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	return cfg.FillDefaults(), nil
}
