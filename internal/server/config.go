package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/quizshow/internal/board"
	"github.com/lox/quizshow/internal/registry"
)

// Config is the complete server configuration. Every block is optional;
// missing blocks and zero fields take the defaults below.
type Config struct {
	Server    *ServerSettings    `hcl:"server,block"`
	Questions *QuestionsSettings `hcl:"questions,block"`
	Avatars   *AvatarSettings    `hcl:"avatars,block"`
	Registry  *RegistrySettings  `hcl:"registry,block"`
	Board     *BoardSettings     `hcl:"board,block"`
}

// ServerSettings contains the listener-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// QuestionsSettings points at the clue archive.
type QuestionsSettings struct {
	Path string `hcl:"path,optional"`
}

// AvatarSettings controls avatar storage and serving.
type AvatarSettings struct {
	Directory string `hcl:"directory,optional"`
	URLPrefix string `hcl:"url_prefix,optional"`
	MaxBytes  int    `hcl:"max_bytes,optional"`
}

// RegistrySettings tunes the game registry's locks and sweep.
type RegistrySettings struct {
	LockTimeoutSeconds   int `hcl:"lock_timeout_seconds,optional"`
	SweepIntervalMinutes int `hcl:"sweep_interval_minutes,optional"`
	MaxAgeHours          int `hcl:"max_age_hours,optional"`
}

// BoardSettings are the board parameters used when a load_board request
// leaves them out.
type BoardSettings struct {
	Multiplier   int64 `hcl:"multiplier,optional"`
	DailyDoubles int   `hcl:"daily_doubles,optional"`
	Categories   int   `hcl:"categories,optional"`
}

// DefaultConfig returns the fully-populated defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Questions: &QuestionsSettings{
			Path: "questions.csv",
		},
		Avatars: &AvatarSettings{
			Directory: "avatars",
			URLPrefix: "/avatars",
			MaxBytes:  1 << 20,
		},
		Registry: &RegistrySettings{
			LockTimeoutSeconds:   5,
			SweepIntervalMinutes: 30,
			MaxAgeHours:          24,
		},
		Board: &BoardSettings{
			Multiplier:   200,
			DailyDoubles: 2,
			Categories:   6,
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults; a present file is decoded and patched with defaults for
// anything it leaves out.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := DefaultConfig()
	if config.Server == nil {
		config.Server = def.Server
	}
	if config.Questions == nil {
		config.Questions = def.Questions
	}
	if config.Avatars == nil {
		config.Avatars = def.Avatars
	}
	if config.Registry == nil {
		config.Registry = def.Registry
	}
	if config.Board == nil {
		config.Board = def.Board
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = def.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = def.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = def.Server.LogLevel
	}
	if config.Questions.Path == "" {
		config.Questions.Path = def.Questions.Path
	}
	if config.Avatars.Directory == "" {
		config.Avatars.Directory = def.Avatars.Directory
	}
	if config.Avatars.URLPrefix == "" {
		config.Avatars.URLPrefix = def.Avatars.URLPrefix
	}
	if config.Avatars.MaxBytes == 0 {
		config.Avatars.MaxBytes = def.Avatars.MaxBytes
	}
	if config.Registry.LockTimeoutSeconds == 0 {
		config.Registry.LockTimeoutSeconds = def.Registry.LockTimeoutSeconds
	}
	if config.Registry.SweepIntervalMinutes == 0 {
		config.Registry.SweepIntervalMinutes = def.Registry.SweepIntervalMinutes
	}
	if config.Registry.MaxAgeHours == 0 {
		config.Registry.MaxAgeHours = def.Registry.MaxAgeHours
	}
	if config.Board.Multiplier == 0 {
		config.Board.Multiplier = def.Board.Multiplier
	}
	if config.Board.Categories == 0 {
		config.Board.Categories = def.Board.Categories
	}

	return &config, nil
}

// Validate checks the configuration for values no deployment should run
// with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Questions.Path == "" {
		return fmt.Errorf("questions path must be set")
	}
	if c.Avatars.MaxBytes <= 0 {
		return fmt.Errorf("avatar max_bytes must be positive")
	}
	if len(c.Avatars.URLPrefix) == 0 || c.Avatars.URLPrefix[0] != '/' {
		return fmt.Errorf("avatar url_prefix must start with /: %q", c.Avatars.URLPrefix)
	}
	if c.Registry.LockTimeoutSeconds <= 0 {
		return fmt.Errorf("registry lock_timeout_seconds must be positive")
	}
	if c.Registry.SweepIntervalMinutes <= 0 {
		return fmt.Errorf("registry sweep_interval_minutes must be positive")
	}
	if c.Registry.MaxAgeHours <= 0 {
		return fmt.Errorf("registry max_age_hours must be positive")
	}
	if c.Board.Multiplier <= 0 {
		return fmt.Errorf("board multiplier must be positive")
	}
	if c.Board.Categories <= 0 {
		return fmt.Errorf("board categories must be positive")
	}
	if c.Board.DailyDoubles < 0 {
		return fmt.Errorf("board daily_doubles must not be negative")
	}
	if c.Board.DailyDoubles > c.Board.Categories*board.CategoryHeight {
		return fmt.Errorf("board daily_doubles exceed the %d squares", c.Board.Categories*board.CategoryHeight)
	}
	return nil
}

// ListenAddr returns the host:port the server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// RegistryOptions converts the registry block into registry options.
func (c *Config) RegistryOptions() registry.Options {
	return registry.Options{
		LockTimeout:   time.Duration(c.Registry.LockTimeoutSeconds) * time.Second,
		SweepInterval: time.Duration(c.Registry.SweepIntervalMinutes) * time.Minute,
		MaxAge:        time.Duration(c.Registry.MaxAgeHours) * time.Hour,
	}
}
