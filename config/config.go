// Package config handles application configuration.
//
// Settings are resolved in order: built-in defaults, the conf file in the
// data directory, then command-line flags. Secrets (master secrets,
// passphrases, mnemonics) are never read from or written to config.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Klingon-tech/klingnet-recovery/internal/recovery"
	"github.com/Klingon-tech/klingnet-recovery/pkg/entropy"
	"github.com/Klingon-tech/klingnet-recovery/pkg/slip39"
)

// Config holds runtime configuration.
type Config struct {
	DataDir string `conf:"datadir"`

	// Share set creation defaults
	Create CreateConfig

	// Entropy analysis
	Entropy EntropyConfig

	// Logging
	Log LogConfig
}

// CreateConfig holds defaults for new share sets.
type CreateConfig struct {
	GroupThreshold    int    `conf:"create.threshold"`
	Groups            string `conf:"create.groups"`      // name:threshold/count,...
	Cryptopaths       string `conf:"create.cryptopaths"` // SYM[:path[:format]],...
	AccountCount      int    `conf:"create.accounts"`
	IterationExponent int    `conf:"create.iteration_exponent"`
	Extendable        bool   `conf:"create.extendable"`
	UsingBIP39        bool   `conf:"create.bip39"`
}

// EntropyConfig holds entropy analyzer settings.
type EntropyConfig struct {
	Stride  int  `conf:"entropy.stride"` // 0 = whole buffer
	Overlap bool `conf:"entropy.overlap"`
	Width   int  `conf:"entropy.width"`  // bits per sample
	Height  int  `conf:"entropy.height"` // samples per frame
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// GroupSpecs parses the configured groups.
func (c *CreateConfig) GroupSpecs() ([]slip39.GroupSpec, error) {
	return recovery.ParseGroups(c.Groups)
}

// Paths parses the configured cryptopaths.
func (c *CreateConfig) Paths() ([]recovery.Cryptopath, error) {
	return recovery.ParseCryptopaths(c.Cryptopaths)
}

// Options converts the creation settings into recovery options. Secret
// material is left for the caller to fill in.
func (c *CreateConfig) Options() (recovery.CreateOptions, error) {
	paths, err := c.Paths()
	if err != nil {
		return recovery.CreateOptions{}, err
	}
	return recovery.CreateOptions{
		UsingBIP39:        c.UsingBIP39,
		Cryptopaths:       paths,
		AccountCount:      c.AccountCount,
		IterationExponent: uint8(c.IterationExponent),
		Extendable:        c.Extendable,
	}, nil
}

// ShannonOptions returns the Shannon estimator window layout.
func (e *EntropyConfig) ShannonOptions() entropy.ShannonOptions {
	return entropy.ShannonOptions{Stride: e.Stride, Overlap: e.Overlap}
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.klingnet-recovery
//	macOS:   ~/Library/Application Support/KlingnetRecovery
//	Windows: %APPDATA%\KlingnetRecovery
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingnet-recovery"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "KlingnetRecovery")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "KlingnetRecovery")
		}
		return filepath.Join(home, "AppData", "Roaming", "KlingnetRecovery")
	default:
		return filepath.Join(home, ".klingnet-recovery")
	}
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "klingnet-recovery.conf")
}
