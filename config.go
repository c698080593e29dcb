package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Config is a named preset in the presets file.
type Config struct {
	Key     string `json:"key"`
	Tempo   int    `json:"tempo"`
	Timesig string `json:"timesig"`
	Sound   string `json:"sound"`
}

type ConfigManager struct {
	Config     []Config
	ConfigPath string
}

func DefaultConfigPath() string {
	return UserHomeDir() + ".clack.json"
}

func NewConfigManager(path string) *ConfigManager {
	if path == "" {
		path = DefaultConfigPath()
	}
	return &ConfigManager{
		ConfigPath: path,
		Config:     []Config{},
	}
}

// LoadConfig reads the presets file. A missing or empty file leaves the
// manager without presets.
func (cm *ConfigManager) LoadConfig() error {
	f, err := os.Open(cm.ConfigPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "error while opening presets")
	}
	defer f.Close()

	fileInfo, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "error while reading presets")
	}
	if fileInfo.Size() == 0 {
		return nil
	}
	if err := json.NewDecoder(f).Decode(&cm.Config); err != nil {
		return errors.Wrapf(err, "error while decoding %s", cm.ConfigPath)
	}
	return nil
}

func (cm *ConfigManager) GetConfigByKey(key string) *Config {
	for i := range cm.Config {
		if cm.Config[i].Key == key {
			return &cm.Config[i]
		}
	}
	return nil
}

// loadPreset returns the preset stored under key in the file at path.
func loadPreset(path, key string) (*Config, error) {
	cm := NewConfigManager(path)
	if err := cm.LoadConfig(); err != nil {
		return nil, err
	}
	c := cm.GetConfigByKey(key)
	if c == nil {
		return nil, errors.Errorf("`%v` preset not found in %s", key, cm.ConfigPath)
	}
	return c, nil
}
