// Package config loads simulation configuration through spf13/viper
// (YAML/JSON/env) with joho/godotenv providing local .env overrides
// in place of an XML config loader.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/axonsim/exchange-sim/internal/feepolicy"
)

// BookConfig describes one book's fee policy and partition placement.
type BookConfig struct {
	ID         uint32               `mapstructure:"id"`
	FeePolicy  feepolicy.Descriptor `mapstructure:"feePolicy"`
	BaseAsset  string               `mapstructure:"baseAsset"`
	QuoteAsset string               `mapstructure:"quoteAsset"`
}

// PartitionConfig sizes the canonicalization scheme: BlockDim book ids
// belong to each of BlockCount compute blocks.
type PartitionConfig struct {
	BlockCount int    `mapstructure:"blockCount"`
	BlockDim   uint32 `mapstructure:"blockDim"`
}

// Config is the full simulation configuration tree.
type Config struct {
	Partition PartitionConfig `mapstructure:"partition"`
	Books     []BookConfig    `mapstructure:"books"`
	LogPath   string          `mapstructure:"logPath"`
}

func defaults() Config {
	return Config{
		Partition: PartitionConfig{BlockCount: 1, BlockDim: 1 << 20},
	}
}

// Load reads configuration from configPath (YAML or JSON, inferred by
// viper from its extension), applying a local .env file's overrides
// first if present, then falling back to built-in defaults for any
// unset field. configPath may be empty, in which case only defaults
// and environment variables apply.
func Load(configPath string) (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	v := viper.New()
	v.SetEnvPrefix("AXONSIM")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.Partition.BlockCount <= 0 {
		cfg.Partition.BlockCount = 1
	}
	if cfg.Partition.BlockDim == 0 {
		cfg.Partition.BlockDim = 1 << 20
	}

	return cfg, nil
}
