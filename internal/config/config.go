package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabWidth int `toml:"tab-width"`
}

type LogOptions struct {
	File  string `toml:"file"`
	Debug bool   `toml:"debug"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Log    LogOptions    `toml:"log"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth: 8,
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Log.File != "" {
		cfg.Log.File = userCfg.Log.File
	}
	if userCfg.Log.Debug {
		cfg.Log.Debug = userCfg.Log.Debug
	}

	return cfg, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("KED_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "ked"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ked"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
