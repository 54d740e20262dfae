package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/fsutil"
)

const panelProvider = `<?php

namespace App\Providers\Filament;

use Filament\Panel;
use Filament\PanelProvider;

class AdminPanelProvider extends PanelProvider
{
    public function panel(Panel $panel): Panel
    {
        return $panel
            ->default()
            ->id('admin')
            ->path('backend');
    }
}
`

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestInspector(t *testing.T) (*Inspector, config.Paths) {
	t.Helper()
	paths := config.DefaultPaths(t.TempDir())
	return NewInspector(fsutil.RealSystem{}, paths, nil), paths
}

func TestDetection(t *testing.T) {
	assert.True(t, Confirmed(true).Found())
	assert.False(t, Confirmed(false).Found())
	assert.True(t, Inferred(true).Found())
	assert.False(t, Unknown().Found())
	assert.False(t, Unknown().Known())
	assert.Equal(t, "confirmed(true)", Confirmed(true).String())
	assert.Equal(t, "inferred(false)", Inferred(false).String())
	assert.Equal(t, "unknown", Unknown().String())
}

func TestHasPanel(t *testing.T) {
	t.Run("nothing", func(t *testing.T) {
		i, _ := newTestInspector(t)
		assert.Equal(t, Inferred(false), i.HasPanel())
	})

	t.Run("filament provider directory", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, filepath.Join(paths.FilamentProvidersDir, "AdminPanelProvider.php"), panelProvider)
		assert.Equal(t, Inferred(true), i.HasPanel())
	})

	t.Run("bootstrap providers", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.BootstrapProviders, "<?php return [App\\Providers\\AdminPanelProvider::class];")
		assert.Equal(t, Inferred(true), i.HasPanel())
	})

	t.Run("provider outside filament directory", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, filepath.Join(paths.ProvidersDir, "AdminProvider.php"), panelProvider)
		assert.Equal(t, Inferred(true), i.HasPanel())
	})

	t.Run("unrelated providers", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, filepath.Join(paths.ProvidersDir, "AppServiceProvider.php"), "<?php class AppServiceProvider extends ServiceProvider {}")
		writeFile(t, paths.BootstrapProviders, "<?php return [App\\Providers\\AppServiceProvider::class];")
		assert.Equal(t, Inferred(false), i.HasPanel())
	})

	t.Run("live manifest", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.PanelManifest, "panels:\n  - id: admin\n    path: admin\n")
		assert.Equal(t, Confirmed(true), i.HasPanel())
	})
}

func TestPluginRegistered(t *testing.T) {
	t.Run("manifest with plugin", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.PanelManifest, "panels:\n  - id: admin\n    plugins: [filament-shield]\n  - id: cms\n    plugins: [tallcms]\n")
		assert.Equal(t, Confirmed(true), i.PluginRegistered())
	})

	t.Run("manifest panels without plugin is definitive", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.PanelManifest, "panels:\n  - id: admin\n    plugins: [filament-shield]\n")
		writeFile(t, filepath.Join(paths.FilamentProvidersDir, "AdminPanelProvider.php"), "$panel->plugin(TallCmsPlugin::make())")
		assert.Equal(t, Confirmed(false), i.PluginRegistered())
	})

	t.Run("empty manifest falls back to scan", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.PanelManifest, "panels: []\n")
		writeFile(t, filepath.Join(paths.ProvidersDir, "AdminPanelProvider.php"), "$panel->plugins([\n  TallCmsPlugin::make(),\n])")
		assert.Equal(t, Inferred(true), i.PluginRegistered())
	})

	t.Run("malformed manifest falls back to scan", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.PanelManifest, "panels: [\n")
		assert.Equal(t, Inferred(false), i.PluginRegistered())
	})

	t.Run("scan without registration", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, filepath.Join(paths.FilamentProvidersDir, "AdminPanelProvider.php"), panelProvider)
		assert.Equal(t, Inferred(false), i.PluginRegistered())
	})
}

func TestAuthorizationPluginInstalled(t *testing.T) {
	t.Run("installed.json composer 2", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.ComposerInstalled, `{"packages": [{"name": "bezhansalleh/filament-shield"}], "dev": true}`)
		assert.Equal(t, Confirmed(true), i.AuthorizationPluginInstalled())
	})

	t.Run("installed.json composer 1", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.ComposerInstalled, `[{"name": "filament/filament"}]`)
		assert.Equal(t, Confirmed(false), i.AuthorizationPluginInstalled())
	})

	t.Run("composer.lock fallback", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.ComposerLock, `{"packages": [{"name": "filament/filament"}], "packages-dev": [{"name": "bezhansalleh/filament-shield"}]}`)
		assert.Equal(t, Inferred(true), i.AuthorizationPluginInstalled())
	})

	t.Run("neither", func(t *testing.T) {
		i, _ := newTestInspector(t)
		assert.Equal(t, Unknown(), i.AuthorizationPluginInstalled())
	})
}

func TestUserModelHasRoles(t *testing.T) {
	userWithRoles := `<?php

namespace App\Models;

use Illuminate\Foundation\Auth\User as Authenticatable;
use Spatie\Permission\Traits\HasRoles;

class User extends Authenticatable
{
    use HasFactory, HasRoles, Notifiable;
}
`
	userWithoutRoles := `<?php

namespace App\Models;

use Spatie\Permission\Traits\HasRoles;

class User extends Authenticatable
{
    use HasFactory, Notifiable;
}
`

	t.Run("trait used", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, filepath.Join(paths.Root, "app", "Models", "User.php"), userWithRoles)
		assert.Equal(t, Inferred(true), i.UserModelHasRoles(`App\Models\User`))
	})

	t.Run("import without use", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, filepath.Join(paths.Root, "app", "Models", "User.php"), userWithoutRoles)
		assert.Equal(t, Inferred(false), i.UserModelHasRoles(`App\Models\User`))
	})

	t.Run("missing file", func(t *testing.T) {
		i, _ := newTestInspector(t)
		assert.Equal(t, Unknown(), i.UserModelHasRoles(`App\Models\User`))
	})

	t.Run("psr-4 mapping from composer.json", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.ComposerJSON, `{
			// comments are tolerated
			"autoload": {"psr-4": {"App\\": "app/", "Domain\\": ["src/Domain/"]}},
		}`)
		writeFile(t, filepath.Join(paths.Root, "src", "Domain", "Accounts", "Member.php"), userWithRoles)
		assert.Equal(t, Inferred(true), i.UserModelHasRoles(`Domain\Accounts\Member`))
	})

	t.Run("manifest traits", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.PanelManifest, "user_model:\n  class: App\\Models\\User\n  traits:\n    - Spatie\\Permission\\Traits\\HasRoles\n")
		assert.Equal(t, Confirmed(true), i.UserModelHasRoles(`App\Models\User`))
	})
}

func TestResolveUserModel(t *testing.T) {
	i, paths := newTestInspector(t)
	cfg := config.Defaults()

	assert.Equal(t, config.DefaultUserModel, i.ResolveUserModel(&cfg))

	cfg.PluginMode.UserModel = `App\Models\Admin`
	assert.Equal(t, config.DefaultUserModel, i.ResolveUserModel(&cfg), "missing class falls back to guard")

	writeFile(t, filepath.Join(paths.Root, "app", "Models", "Admin.php"), "<?php class Admin {}")
	assert.Equal(t, `App\Models\Admin`, i.ResolveUserModel(&cfg))

	cfg.PluginMode.UserModel = ""
	cfg.Auth.Guard = "staff"
	cfg.Host.Auth.Guards["staff"] = config.HostGuard{Provider: "staff"}
	cfg.Host.Auth.Providers["staff"] = config.HostProvider{Model: `App\Models\Staff`}
	assert.Equal(t, `App\Models\Staff`, i.ResolveUserModel(&cfg))
}

func TestPanelPath(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		i, _ := newTestInspector(t)
		cfg := config.Defaults()
		cfg.Panel.Path = "/manage/"
		assert.Equal(t, "/manage", i.PanelPath(&cfg))
	})

	t.Run("first live panel", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.PanelManifest, "panels:\n  - id: app\n    path: /app/\n  - id: admin\n    path: control\n")
		writeFile(t, filepath.Join(paths.FilamentProvidersDir, "AdminPanelProvider.php"), panelProvider)
		cfg := config.Defaults()
		cfg.Panel.Path = ""
		assert.Equal(t, "/app", i.PanelPath(&cfg))
	})

	t.Run("live panel at root falls through to providers", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, paths.PanelManifest, "panels:\n  - id: app\n    path: \"\"\n")
		writeFile(t, filepath.Join(paths.FilamentProvidersDir, "AdminPanelProvider.php"), panelProvider)
		cfg := config.Defaults()
		cfg.Panel.Path = ""
		assert.Equal(t, "/backend", i.PanelPath(&cfg))
	})

	t.Run("provider source", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, filepath.Join(paths.FilamentProvidersDir, "AdminPanelProvider.php"), panelProvider)
		cfg := config.Defaults()
		cfg.Panel.Path = ""
		assert.Equal(t, "/backend", i.PanelPath(&cfg))
	})

	t.Run("panel provider outside filament directory", func(t *testing.T) {
		i, paths := newTestInspector(t)
		writeFile(t, filepath.Join(paths.ProvidersDir, "RouteServiceProvider.php"), "<?php $router->path('ignored');")
		writeFile(t, filepath.Join(paths.ProvidersDir, "StaffPanelProvider.php"), panelProvider)
		cfg := config.Defaults()
		cfg.Panel.Path = ""
		assert.Equal(t, "/backend", i.PanelPath(&cfg))
	})

	t.Run("fallback", func(t *testing.T) {
		i, _ := newTestInspector(t)
		cfg := config.Defaults()
		cfg.Panel.Path = ""
		assert.Equal(t, DefaultPanelPath, i.PanelPath(&cfg))
	})
}
