package detect

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/tallcms/cms-installer/internal/messages"
)

// Manifest is the panel manifest the host framework exports after booting
// (bootstrap/cache/panels.yaml). It is the live source of truth for panels,
// their plugins, and the resolved user model.
type Manifest struct {
	Panels    []ManifestPanel    `yaml:"panels"`
	UserModel *ManifestUserModel `yaml:"user_model"`
}

// ManifestPanel describes one registered admin panel.
type ManifestPanel struct {
	ID      string   `yaml:"id"`
	Path    string   `yaml:"path"`
	Default bool     `yaml:"default"`
	Plugins []string `yaml:"plugins"`
}

// ManifestUserModel describes the user model class and the traits it uses,
// including inherited ones.
type ManifestUserModel struct {
	Class  string   `yaml:"class"`
	Traits []string `yaml:"traits"`
}

// HasPlugin reports whether the panel registers the plugin with id.
func (p ManifestPanel) HasPlugin(id string) bool {
	for _, plugin := range p.Plugins {
		if plugin == id {
			return true
		}
	}
	return false
}

// ParseManifest decodes manifest YAML. source is used in error messages.
func ParseManifest(data []byte, source string) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf(messages.DetectManifestParseFmt, source, err)
	}
	return &manifest, nil
}

// manifest loads the live manifest. It returns nil without error when the
// host has not exported one.
func (i *Inspector) manifest() (*Manifest, error) {
	data, err := i.sys.ReadFile(i.paths.PanelManifest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.DetectManifestReadFmt, i.paths.PanelManifest, err)
	}
	return ParseManifest(data, i.paths.PanelManifest)
}
