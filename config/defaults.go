package config

import "github.com/Klingon-tech/klingnet-recovery/pkg/slip39"

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Create: CreateConfig{
			GroupThreshold: 2,
			// Two single-share groups for the owner plus family and
			// friends groups that need several holders to cooperate.
			Groups:            "one:1/1,two:1/1,fam:2/4,fren:3/5",
			Cryptopaths:       "ETH,BTC",
			AccountCount:      1,
			IterationExponent: slip39.DefaultIterationExponent,
		},
		Entropy: EntropyConfig{
			Stride:  0,
			Overlap: true,
			Width:   8,
			Height:  8,
		},
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}
