package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config interface {
	BasePath() string
}

// FileConfig is the resolved .lineup.yaml / LINEUP_* configuration.
type FileConfig struct {
	Path    string `json:"path" yaml:"path"`
	Page    string `json:"page,omitempty" yaml:"page,omitempty"`
	Timeout int    `json:"timeout" yaml:"timeout"`
	Mode    string `json:"mode" yaml:"mode"`
	Refresh string `json:"refresh,omitempty" yaml:"refresh,omitempty"`
}

func LoadConfig() (*FileConfig, error) {
	viper.SetDefault("path", "~/.lineup.db")
	viper.SetDefault("timeout", 15)
	viper.SetDefault("mode", "start")
	viper.SetDefault("refresh", "@every 5m")
	viper.SetConfigName(".lineup") // .yaml is implicit
	viper.SetEnvPrefix("LINEUP")
	viper.AutomaticEnv()

	if override := os.Getenv("LINEUP_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &FileConfig{
		Path:    path,
		Page:    viper.GetString("page"),
		Timeout: viper.GetInt("timeout"),
		Mode:    viper.GetString("mode"),
		Refresh: viper.GetString("refresh"),
	}, nil
}

func (f *FileConfig) BasePath() string {
	return f.Path
}
