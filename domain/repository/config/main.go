package config

import (
	"github.com/t-kuni/ngpkgsync/domain/model/dependency"
	"github.com/t-kuni/ngpkgsync/domain/model/workspace"
)

// FileNames 探索順
var FileNames = []string{"ngpkgsync.yml", "ngpkgsync.yaml", "ngpkgsync.toml"}

type Config struct {
	LibraryType     string   `yaml:"library-type" toml:"library-type"`
	RootSections    []string `yaml:"root-sections" toml:"root-sections"`
	LibrarySections []string `yaml:"library-sections" toml:"library-sections"`
	Backup          bool     `yaml:"backup" toml:"backup"`
}

func Default() *Config {
	return &Config{
		LibraryType:     workspace.LibraryProjectType,
		RootSections:    append([]string(nil), dependency.DefaultRootSections...),
		LibrarySections: append([]string(nil), dependency.DefaultLibrarySections...),
	}
}

// FillDefaults 未設定の項目をデフォルト値で埋める
func (c *Config) FillDefaults() {
	d := Default()
	if c.LibraryType == "" {
		c.LibraryType = d.LibraryType
	}
	if len(c.RootSections) == 0 {
		c.RootSections = d.RootSections
	}
	if len(c.LibrarySections) == 0 {
		c.LibrarySections = d.LibrarySections
	}
}

type Repository interface {
	// Find dir 直下にある設定ファイルのうち FileNames の順で最初に見つかったもののパス
	Find(dir string) (path string, found bool)
	Read(path string) (*Config, error)
	Write(path string, cfg *Config) error
}
