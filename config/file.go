package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadFile loads configuration from a .conf file.
// Format: key = value (one per line, # for comments)
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets a config value by key. Keys that could carry secret
// material do not exist.
func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	case "datadir":
		cfg.DataDir = value

	// Creation
	case "create.threshold":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Create.GroupThreshold = n
	case "create.groups":
		cfg.Create.Groups = value
	case "create.cryptopaths":
		cfg.Create.Cryptopaths = value
	case "create.accounts":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Create.AccountCount = n
	case "create.iteration_exponent":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Create.IterationExponent = n
	case "create.extendable":
		cfg.Create.Extendable = parseBool(value)
	case "create.bip39":
		cfg.Create.UsingBIP39 = parseBool(value)

	// Entropy
	case "entropy.stride":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Entropy.Stride = n
	case "entropy.overlap":
		cfg.Entropy.Overlap = parseBool(value)
	case "entropy.width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Entropy.Width = n
	case "entropy.height":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Entropy.Height = n

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// WriteDefaultConfig writes a default configuration file. An existing file
// is left untouched.
func WriteDefaultConfig(path string) error {
	d := Default()
	content := `# Klingnet Recovery Configuration
#
# This file holds tool defaults only. Master secrets, passphrases and
# mnemonics are never read from or written to this file.

# Data directory (default: ~/.klingnet-recovery)
# datadir = ~/.klingnet-recovery

# ============================================================================
# Share set creation
# ============================================================================

# Number of groups needed to recover
create.threshold = ` + strconv.Itoa(d.Create.GroupThreshold) + `

# Groups as name:threshold/count, comma-separated
create.groups = ` + d.Create.Groups + `

# Accounts to derive as SYMBOL[:path[:format]], comma-separated
create.cryptopaths = ` + d.Create.Cryptopaths + `
# create.accounts = 1

# SLIP-39 PBKDF2 work factor, 10000 << exponent iterations in total
create.iteration_exponent = ` + strconv.Itoa(d.Create.IterationExponent) + `
# create.extendable = false

# Derive accounts from the BIP-39 seed of the master secret
# create.bip39 = false

# ============================================================================
# Entropy analysis
# ============================================================================

# Shannon window in bytes (0 = whole input) and sliding windows
# entropy.stride = 0
entropy.overlap = true

# Signal analysis: bits per sample and samples per frame
entropy.width = ` + strconv.Itoa(d.Entropy.Width) + `
entropy.height = ` + strconv.Itoa(d.Entropy.Height) + `

# ============================================================================
# Logging
# ============================================================================

log.level = ` + d.Log.Level + `
# log.file =
log.json = false
`
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
