// Package theme activates frontend themes and lists the themes a host can use.
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/fsutil"
	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/templates"
)

// Theme names with special meaning to the installer.
const (
	// DefaultTheme is the unstyled fallback every host starts with.
	DefaultTheme = "default"
	// BundledTheme is activated by install.
	BundledTheme = "talldaisy"
)

const manifestName = "theme.toml"

// Info describes one available theme.
type Info struct {
	Name      string
	Label     string
	Bundled   bool
	Published bool
}

type manifest struct {
	Name  string `toml:"name"`
	Label string `toml:"label"`
}

// Manager reads and writes the active theme in config/theme.toml.
type Manager struct {
	sys    fsutil.System
	paths  config.Paths
	logger *zap.Logger
}

// NewManager returns a Manager for the host at paths.
func NewManager(sys fsutil.System, paths config.Paths, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{sys: sys, paths: paths, logger: logger}
}

// ConfigExists reports whether config/theme.toml exists.
func (m *Manager) ConfigExists() (bool, error) {
	return fsutil.Exists(m.sys, m.paths.ThemeConfigPath)
}

// Active returns the active theme name from config/theme.toml. An error means
// the file exists but could not be read or parsed.
func (m *Manager) Active() (string, error) {
	values, err := m.readConfig()
	if err != nil {
		return "", err
	}
	name, _ := values["active"].(string)
	return strings.TrimSpace(name), nil
}

func (m *Manager) readConfig() (map[string]any, error) {
	data, err := m.sys.ReadFile(m.paths.ThemeConfigPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf(messages.ThemeReadConfigFmt, m.paths.ThemeConfigPath, err)
	}
	values := map[string]any{}
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf(messages.ThemeParseConfigFmt, m.paths.ThemeConfigPath, err)
	}
	return values, nil
}

// Activate makes name the active theme. Bundled theme files missing from
// public/themes/<name> are published first; files already there are left
// alone. Other keys in config/theme.toml are preserved, except when the
// existing file cannot be parsed, in which case it is replaced.
func (m *Manager) Activate(name string) error {
	bundled := templates.Exists(path.Join(templates.ThemesDir, name, manifestName))
	published, err := fsutil.Exists(m.sys, filepath.Join(m.paths.ThemesDir, name))
	if err != nil {
		return fmt.Errorf(messages.ThemeCopyAssetsFmt, name, err)
	}
	if !bundled && !published {
		return fmt.Errorf(messages.ThemeUnknownFmt, name)
	}
	if bundled {
		if err := m.publishBundled(name); err != nil {
			return fmt.Errorf(messages.ThemeCopyAssetsFmt, name, err)
		}
	}

	values, err := m.readConfig()
	if err != nil {
		m.logger.Debug("replacing unreadable theme config", zap.Error(err))
		values = map[string]any{}
	}
	values["active"] = name
	data, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf(messages.ThemeWriteConfigFmt, m.paths.ThemeConfigPath, err)
	}
	if err := m.sys.MkdirAll(filepath.Dir(m.paths.ThemeConfigPath), 0o755); err != nil {
		return fmt.Errorf(messages.ThemeWriteConfigFmt, m.paths.ThemeConfigPath, err)
	}
	if err := m.sys.WriteFileAtomic(m.paths.ThemeConfigPath, data, 0o644); err != nil {
		return fmt.Errorf(messages.ThemeWriteConfigFmt, m.paths.ThemeConfigPath, err)
	}
	m.logger.Debug(fmt.Sprintf(messages.ThemeActivateLogFmt, name))
	return nil
}

func (m *Manager) publishBundled(name string) error {
	root := path.Join(templates.ThemesDir, name)
	dest := filepath.Join(m.paths.ThemesDir, name)
	return templates.Walk(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		target := filepath.Join(dest, filepath.FromSlash(rel))
		if d.IsDir() {
			return m.sys.MkdirAll(target, 0o755)
		}
		exists, err := fsutil.Exists(m.sys, target)
		if err != nil || exists {
			return err
		}
		data, err := templates.Read(p)
		if err != nil {
			return err
		}
		return m.sys.WriteFileAtomic(target, data, 0o644)
	})
}

// Available lists bundled themes and themes published under public/themes,
// sorted by name.
func (m *Manager) Available() ([]Info, error) {
	byName := map[string]*Info{}
	entries, err := templates.ReadDir(templates.ThemesDir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info := &Info{Name: entry.Name(), Label: entry.Name(), Bundled: true}
		if data, err := templates.Read(path.Join(templates.ThemesDir, entry.Name(), manifestName)); err == nil {
			info.Label = labelFrom(data, info.Label)
		}
		byName[info.Name] = info
	}

	published, err := m.sys.ReadDir(m.paths.ThemesDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, entry := range published {
		if !entry.IsDir() {
			continue
		}
		info, ok := byName[entry.Name()]
		if !ok {
			info = &Info{Name: entry.Name(), Label: entry.Name()}
			if data, err := m.sys.ReadFile(filepath.Join(m.paths.ThemesDir, entry.Name(), manifestName)); err == nil {
				info.Label = labelFrom(data, info.Label)
			}
			byName[info.Name] = info
		}
		info.Published = true
	}

	out := make([]Info, 0, len(byName))
	for _, info := range byName {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func labelFrom(data []byte, fallback string) string {
	var mf manifest
	if err := toml.Unmarshal(data, &mf); err != nil || strings.TrimSpace(mf.Label) == "" {
		return fallback
	}
	return mf.Label
}
