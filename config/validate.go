package config

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-recovery/internal/log"
	"github.com/Klingon-tech/klingnet-recovery/pkg/entropy"
	"github.com/Klingon-tech/klingnet-recovery/pkg/slip39"
)

// Validate checks the config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	groups, err := cfg.Create.GroupSpecs()
	if err != nil {
		return fmt.Errorf("create.groups: %w", err)
	}
	if cfg.Create.GroupThreshold < 1 || cfg.Create.GroupThreshold > len(groups) {
		return fmt.Errorf("create.threshold must be in range [1, %d]", len(groups))
	}
	for _, g := range groups {
		if g.MemberThreshold < 1 || g.MemberThreshold > g.MemberCount {
			return fmt.Errorf("create.groups: %s needs 1 <= threshold <= count", g.Name)
		}
	}
	if _, err := cfg.Create.Paths(); err != nil {
		return fmt.Errorf("create.cryptopaths: %w", err)
	}
	if cfg.Create.AccountCount < 1 {
		return fmt.Errorf("create.accounts must be at least 1")
	}
	if maxExp := 1<<slip39.IterationExponentBits - 1; cfg.Create.IterationExponent < 0 || cfg.Create.IterationExponent > maxExp {
		return fmt.Errorf("create.iteration_exponent must be in range [0, %d]", maxExp)
	}

	if cfg.Entropy.Stride < 0 || cfg.Entropy.Stride == 1 {
		return fmt.Errorf("entropy.stride must be 0 or at least 2")
	}
	if cfg.Entropy.Width < 1 || cfg.Entropy.Width > 8 {
		return fmt.Errorf("entropy.width must be in range [1, 8]")
	}
	if cfg.Entropy.Height < 2 || !entropy.IsPowerOfTwo(cfg.Entropy.Height) {
		return fmt.Errorf("entropy.height must be a power of two of at least 2")
	}

	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error")
	}
	return nil
}
