package detect

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/fsutil"
)

// PluginID is the id the CMS plugin registers on a panel.
const PluginID = "tallcms"

// DefaultPanelPath is reported when no other source names the panel path.
const DefaultPanelPath = "/admin"

// PluginRegistrationPattern matches a panel provider registering the CMS
// plugin through ->plugin(...) or ->plugins([...]), with or without the fully
// qualified class name and across multiline arrays.
var PluginRegistrationPattern = regexp.MustCompile(`->plugins?\s*\(\s*(\[[\s\S]*?)?(\\?TallCms\\Cms\\)?TallCmsPlugin::make\s*\(`)

var panelPathPattern = regexp.MustCompile(`->path\s*\(\s*['"]([^'"]+)['"]\s*\)`)

// MatchesPluginRegistration reports whether PHP source registers the plugin.
func MatchesPluginRegistration(source string) bool {
	return PluginRegistrationPattern.MatchString(source)
}

// Inspector answers questions about the host application.
type Inspector struct {
	sys    fsutil.System
	paths  config.Paths
	logger *zap.Logger
}

// NewInspector returns an Inspector for the host at paths.
func NewInspector(sys fsutil.System, paths config.Paths, logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{sys: sys, paths: paths, logger: logger}
}

// liveManifest returns the manifest, logging and discarding read errors so
// callers fall back to the static scan.
func (i *Inspector) liveManifest() *Manifest {
	manifest, err := i.manifest()
	if err != nil {
		i.logger.Debug("panel manifest unavailable", zap.Error(err))
		return nil
	}
	return manifest
}

// HasPanel reports whether the host registers at least one admin panel.
func (i *Inspector) HasPanel() Detection {
	if manifest := i.liveManifest(); manifest != nil && len(manifest.Panels) > 0 {
		return Confirmed(true)
	}

	if files := i.phpFiles(i.paths.FilamentProvidersDir); len(files) > 0 {
		return Inferred(true)
	}
	if data, err := i.sys.ReadFile(i.paths.BootstrapProviders); err == nil {
		content := string(data)
		if strings.Contains(content, "PanelProvider") || strings.Contains(content, "Filament") {
			return Inferred(true)
		}
	}
	for _, file := range i.phpFiles(i.paths.ProvidersDir) {
		content, ok := i.read(file)
		if ok && isPanelProvider(content) {
			return Inferred(true)
		}
	}
	return Inferred(false)
}

// PluginRegistered reports whether any panel registers the CMS plugin. A live
// manifest with panels is definitive even when none of them has the plugin.
func (i *Inspector) PluginRegistered() Detection {
	if manifest := i.liveManifest(); manifest != nil && len(manifest.Panels) > 0 {
		for _, panel := range manifest.Panels {
			if panel.HasPlugin(PluginID) {
				return Confirmed(true)
			}
		}
		return Confirmed(false)
	}

	for _, dir := range []string{i.paths.FilamentProvidersDir, i.paths.ProvidersDir} {
		for _, file := range i.phpFiles(dir) {
			content, ok := i.read(file)
			if ok && MatchesPluginRegistration(content) {
				return Inferred(true)
			}
		}
	}
	return Inferred(false)
}

// PanelPath returns the panel path to show operators: the configured path,
// else the first live panel's path, else the first ->path('x') in a panel
// provider, else DefaultPanelPath. Results start with "/".
func (i *Inspector) PanelPath(cfg *config.Config) string {
	if p := strings.Trim(cfg.Panel.Path, "/"); p != "" {
		return "/" + p
	}
	if manifest := i.liveManifest(); manifest != nil && len(manifest.Panels) > 0 {
		if p := strings.Trim(manifest.Panels[0].Path, "/"); p != "" {
			return "/" + p
		}
	}
	for _, file := range i.phpFiles(i.paths.FilamentProvidersDir) {
		if path, ok := i.pathInFile(file); ok {
			return path
		}
	}
	for _, file := range i.phpFiles(i.paths.ProvidersDir) {
		content, ok := i.read(file)
		if !ok || !isPanelProvider(content) {
			continue
		}
		if match := panelPathPattern.FindStringSubmatch(content); match != nil {
			return "/" + strings.Trim(match[1], "/")
		}
	}
	return DefaultPanelPath
}

func (i *Inspector) pathInFile(file string) (string, bool) {
	content, ok := i.read(file)
	if !ok {
		return "", false
	}
	match := panelPathPattern.FindStringSubmatch(content)
	if match == nil {
		return "", false
	}
	return "/" + strings.Trim(match[1], "/"), true
}

func isPanelProvider(content string) bool {
	return strings.Contains(content, "extends PanelProvider") || strings.Contains(content, `Filament\Panel`)
}

// phpFiles lists *.php files directly inside dir, sorted. Missing or
// unreadable directories yield nothing.
func (i *Inspector) phpFiles(dir string) []string {
	entries, err := i.sys.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			i.logger.Debug("provider scan skipped", zap.String("dir", dir), zap.Error(err))
		}
		return nil
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".php" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files
}

func (i *Inspector) read(file string) (string, bool) {
	data, err := i.sys.ReadFile(file)
	if err != nil {
		i.logger.Debug("provider file unreadable", zap.String("file", file), zap.Error(err))
		return "", false
	}
	return string(data), true
}
