package config

import (
	"github.com/spf13/viper"
)

// Config carries the tunables the binaries need. Everything has a
// default so the engine runs with no config file at all.
type Config struct {
	SearchDepth int    `mapstructure:"SEARCH_DEPTH"`
	BookPath    string `mapstructure:"BOOK_PATH"`
	ListenAddr  string `mapstructure:"LISTEN_ADDR"`
	RandomSeed  int64  `mapstructure:"RANDOM_SEED"`
}

// Setup reads the config file at cfgPath on top of the defaults. A
// missing or unreadable file is reported but still yields a usable
// default configuration; callers log the error and keep going.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgPath)

	v.SetDefault("SEARCH_DEPTH", 2)
	v.SetDefault("BOOK_PATH", "engine/opening_book.csv")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("RANDOM_SEED", 0) // 0 = seed from the clock

	readErr := v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, readErr
}
