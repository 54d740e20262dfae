package detect

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/messages"
)

// AuthorizationPackage is the companion authorization plugin the CMS needs.
const AuthorizationPackage = "bezhansalleh/filament-shield"

// RolesTrait is the trait the user model must use.
const RolesTrait = `Spatie\Permission\Traits\HasRoles`

type composerPackage struct {
	Name string `json:"name"`
}

// installedManifest covers both installed.json layouts: an object with a
// packages list (Composer 2) and a bare list (Composer 1).
type installedManifest struct {
	Packages []composerPackage `json:"packages"`
}

type lockManifest struct {
	Packages    []composerPackage `json:"packages"`
	PackagesDev []composerPackage `json:"packages-dev"`
}

type composerManifest struct {
	Autoload struct {
		PSR4 map[string]json.RawMessage `json:"psr-4"`
	} `json:"autoload"`
}

// decodeComposer parses Composer JSON. Comments and trailing commas are
// tolerated since hand-edited composer.json files often carry them.
func decodeComposer(data []byte, source string, v any) error {
	if err := json.Unmarshal(jsonc.ToJSON(data), v); err != nil {
		return fmt.Errorf(messages.DetectComposerParseFmt, source, err)
	}
	return nil
}

// AuthorizationPluginInstalled reports whether the authorization plugin is
// installed: Confirmed from vendor/composer/installed.json, Inferred from
// composer.lock, Unknown when neither is readable.
func (i *Inspector) AuthorizationPluginInstalled() Detection {
	if data, err := i.sys.ReadFile(i.paths.ComposerInstalled); err == nil {
		packages, err := installedPackages(data, i.paths.ComposerInstalled)
		if err == nil {
			return Confirmed(containsPackage(packages, AuthorizationPackage))
		}
		i.logger.Debug("installed.json unreadable", zap.Error(err))
	}
	if data, err := i.sys.ReadFile(i.paths.ComposerLock); err == nil {
		var lock lockManifest
		err := decodeComposer(data, i.paths.ComposerLock, &lock)
		if err == nil {
			found := containsPackage(lock.Packages, AuthorizationPackage) || containsPackage(lock.PackagesDev, AuthorizationPackage)
			return Inferred(found)
		}
		i.logger.Debug("composer.lock unreadable", zap.Error(err))
	}
	return Unknown()
}

func installedPackages(data []byte, source string) ([]composerPackage, error) {
	clean := strings.TrimSpace(string(jsonc.ToJSON(data)))
	if strings.HasPrefix(clean, "[") {
		var list []composerPackage
		if err := json.Unmarshal([]byte(clean), &list); err != nil {
			return nil, fmt.Errorf(messages.DetectComposerParseFmt, source, err)
		}
		return list, nil
	}
	var manifest installedManifest
	if err := decodeComposer(data, source, &manifest); err != nil {
		return nil, err
	}
	return manifest.Packages, nil
}

func containsPackage(packages []composerPackage, name string) bool {
	for _, pkg := range packages {
		if strings.EqualFold(pkg.Name, name) {
			return true
		}
	}
	return false
}

// ResolveUserModel picks the user model class: plugin_mode.user_model when it
// names a class with a source file, else the class behind the configured auth
// guard, else config.DefaultUserModel.
func (i *Inspector) ResolveUserModel(cfg *config.Config) string {
	if model := strings.TrimSpace(cfg.PluginMode.UserModel); model != "" {
		if file, ok := i.ClassFile(model); ok {
			if _, err := i.sys.Stat(file); err == nil {
				return model
			}
		}
		i.logger.Debug("configured user model not found, using auth guard", zap.String("model", model))
	}
	return cfg.GuardUserModel()
}

// ClassFile maps a class name to its source file through the PSR-4 autoload
// map in composer.json. Without a readable composer.json the conventional
// App\ => app/ mapping is used.
func (i *Inspector) ClassFile(class string) (string, bool) {
	class = strings.TrimPrefix(class, `\`)
	mapping := i.psr4()
	prefixes := make([]string, 0, len(mapping))
	for prefix := range mapping {
		prefixes = append(prefixes, prefix)
	}
	// Longest prefix wins.
	sort.Slice(prefixes, func(a, b int) bool { return len(prefixes[a]) > len(prefixes[b]) })
	for _, prefix := range prefixes {
		if !strings.HasPrefix(class, prefix) {
			continue
		}
		rest := strings.ReplaceAll(strings.TrimPrefix(class, prefix), `\`, "/")
		return filepath.Join(i.paths.Root, filepath.FromSlash(mapping[prefix]), filepath.FromSlash(rest)+".php"), true
	}
	return "", false
}

func (i *Inspector) psr4() map[string]string {
	fallback := map[string]string{`App\`: "app/"}
	data, err := i.sys.ReadFile(i.paths.ComposerJSON)
	if err != nil {
		return fallback
	}
	var manifest composerManifest
	if err := decodeComposer(data, i.paths.ComposerJSON, &manifest); err != nil {
		i.logger.Debug("composer.json unreadable", zap.Error(err))
		return fallback
	}
	mapping := map[string]string{}
	for prefix, raw := range manifest.Autoload.PSR4 {
		// A PSR-4 entry is a directory or a list of directories; the first is used.
		var dir string
		if err := json.Unmarshal(raw, &dir); err != nil {
			var dirs []string
			if err := json.Unmarshal(raw, &dirs); err != nil || len(dirs) == 0 {
				continue
			}
			dir = dirs[0]
		}
		mapping[prefix] = dir
	}
	if len(mapping) == 0 {
		return fallback
	}
	return mapping
}

var classDecl = regexp.MustCompile(`(?m)^\s*(?:final\s+|abstract\s+)?class\s+\w+`)
var traitUse = regexp.MustCompile(`\buse\s+([^;{]+);`)

// UserModelHasRoles reports whether model uses the roles trait: Confirmed from
// the live manifest's trait list, Inferred from the class source, Unknown when
// neither is available.
func (i *Inspector) UserModelHasRoles(model string) Detection {
	if manifest := i.liveManifest(); manifest != nil && manifest.UserModel != nil &&
		strings.TrimPrefix(manifest.UserModel.Class, `\`) == strings.TrimPrefix(model, `\`) {
		for _, trait := range manifest.UserModel.Traits {
			if strings.TrimPrefix(trait, `\`) == RolesTrait {
				return Confirmed(true)
			}
		}
		return Confirmed(false)
	}

	file, ok := i.ClassFile(model)
	if !ok {
		return Unknown()
	}
	data, err := i.sys.ReadFile(file)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			i.logger.Debug("user model unreadable", zap.String("file", file), zap.Error(err))
		}
		return Unknown()
	}
	return Inferred(usesRolesTrait(string(data)))
}

// usesRolesTrait scans a class body for a trait use statement naming HasRoles.
// Imports above the class declaration are not trait uses.
func usesRolesTrait(source string) bool {
	loc := classDecl.FindStringIndex(source)
	if loc == nil {
		return false
	}
	for _, match := range traitUse.FindAllStringSubmatch(source[loc[1]:], -1) {
		for _, name := range strings.Split(match[1], ",") {
			name = strings.TrimSpace(name)
			if name == "HasRoles" || strings.TrimPrefix(name, `\`) == RolesTrait {
				return true
			}
		}
	}
	return false
}
