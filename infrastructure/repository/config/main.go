package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
	"github.com/t-kuni/ngpkgsync/domain/repository/config"
	"gopkg.in/yaml.v3"
)

type ConfigRepository struct{}

func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{}
}

func (r *ConfigRepository) Find(dir string) (string, bool) {
	for _, name := range config.FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func (r *ConfigRepository) Read(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read config: %s", path)
	}

	var cfg config.Config
	if isToml(path) {
		err = toml.Unmarshal(content, &cfg)
	} else {
		err = yaml.Unmarshal(content, &cfg)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse config: %s", path)
	}

	cfg.FillDefaults()
	return &cfg, nil
}

func (r *ConfigRepository) Write(path string, cfg *config.Config) error {
	var content []byte
	if isToml(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return eris.Wrapf(err, "failed to encode config: %s", path)
		}
		content = buf.Bytes()
	} else {
		var err error
		content, err = yaml.Marshal(cfg)
		if err != nil {
			return eris.Wrapf(err, "failed to encode config: %s", path)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	return os.WriteFile(path, content, 0644)
}

func isToml(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
