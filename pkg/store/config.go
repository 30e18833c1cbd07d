package store

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config resolves where dataset documents live on disk.
type Config interface {
	BasePath() string
}

// LoadConfig reads the .timeline config file, falling back to environment
// variables with the TIMELINE prefix and a default database under the home
// directory.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.timeline.db")
	viper.SetConfigName(".timeline") // .yaml is implicit
	viper.SetEnvPrefix("TIMELINE")
	viper.AutomaticEnv()

	if override := os.Getenv("TIMELINE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path := viper.GetString("path")
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
