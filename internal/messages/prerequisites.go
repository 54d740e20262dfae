package messages

// Prerequisite check names, issues, and remediation text.
const (
	PrereqCheckUserModel     = "UserModel"
	PrereqCheckPanel         = "Panel"
	PrereqCheckAuthorization = "Authorization"
	PrereqCheckPlugin        = "Plugin"

	PrereqUserModelMissingRolesFmt = "User model (%s) is missing the HasRoles trait"
	PrereqUserModelFix             = "Add to your User model:\n\n" +
		"    use Spatie\\Permission\\Traits\\HasRoles;\n\n" +
		"    class User extends Authenticatable\n" +
		"    {\n" +
		"        use HasFactory, HasRoles, Notifiable;\n" +
		"    }"

	PrereqPanelMissing = "No Filament panel provider found"
	PrereqPanelFix     = "Install and configure Filament first:\n\n" +
		"    composer require filament/filament:\"^4.0\"\n" +
		"    php artisan filament:install --panels"

	PrereqShieldMissing = "Filament Shield is not installed"
	PrereqShieldFix     = "This should have been installed as a dependency. Try: composer require bezhansalleh/filament-shield"

	PrereqPluginMissing = "TallCmsPlugin is not registered in your Filament panel"
	PrereqPluginFix     = "Add TallCmsPlugin to your panel provider:\n\n" +
		"    use TallCms\\Cms\\TallCmsPlugin;\n\n" +
		"    return $panel\n" +
		"        ->plugins([\n" +
		"            TallCmsPlugin::make(),\n" +
		"        ]);"

	DetectConfirmed = "confirmed"
	DetectInferred  = "inferred"
	DetectUnknown   = "unknown"

	DetectManifestReadFmt  = "read panel manifest %s: %w"
	DetectManifestParseFmt = "parse panel manifest %s: %w"
	DetectComposerParseFmt = "parse composer manifest %s: %w"
)
