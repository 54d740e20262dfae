package messages

// Installer messages for the install pipeline.
const (
	InstallHeader           = "Installing TallCMS..."
	InstallAlreadyInstalled = "TallCMS appears to be already installed."
	InstallUseForce         = "  Use --force to reinstall."

	InstallTaskCheckingPrerequisites = "Checking prerequisites"
	InstallPrerequisitesFailed       = "Prerequisites not met. Please fix the following:"
	InstallIssueLineFmt              = "  %d. %s"
	InstallIssueFixLabel             = "     Fix:"
	InstallIssueFixLineFmt           = "     %s"
	InstallPrerequisitesRerun        = "  After fixing these issues, run tallcms install again."
	InstallPrerequisitesMet          = "  ✓ All prerequisites met"

	InstallTaskPermissionSchema        = "Permission schema migrations"
	InstallTaskPublishPermissionSchema = "Publishing permission schema migrations"
	InstallAlreadyPublished            = "already published"
	InstallPermissionProbeFailedFmt    = "Could not inspect the roles table (%v); publishing the permission schema."

	InstallTaskPublishConfig     = "Publishing TallCMS configuration"
	InstallConfigDiffersHeader   = "Existing config/tallcms.toml differs from the bundled template (kept as is):"
	InstallConfigDiffTruncated   = "  ... diff truncated"
	InstallConfigReloadFailedFmt = "Could not reload the published configuration: %v"

	InstallTaskMigrations     = "Running database migrations"
	InstallMigrationsFailed   = "Database migrations failed:"
	InstallMigrationsRemedy   = "  Fix the database error above, then run tallcms install again. Steps that already completed are safe to repeat."
	InstallMigrationsAppliedN = "%d applied"

	InstallTaskAssets      = "Publishing TallCMS assets to public/vendor/tallcms/"
	InstallAssetsOverwrite = "Note: This overwrites any customized TallCMS assets in public/vendor/tallcms/"

	InstallTaskTheme           = "Theme activation"
	InstallTaskActivateTheme   = "Activating TallDaisy theme"
	InstallThemeDisabled       = "skipped (themes disabled)"
	InstallThemeKeepingFmt     = "keeping '%s'"
	InstallThemeUnreadable     = "Could not read config/theme.toml; re-activating TallDaisy."
	InstallThemeActivateFailed = "Could not activate TallDaisy theme. Frontend styling may be missing."
	InstallThemeListHint       = "  Try: tallcms theme list to see available themes"
	InstallThemeCheckHint      = "  Check: public/themes/talldaisy/ exists"

	InstallTaskPanelAssets       = "Publishing Filament assets"
	InstallPanelAssetsFailedFmt  = "Could not publish Filament assets: %v"
	InstallPanelAssetsRemedyHint = "  Run php artisan filament:assets manually."

	InstallSettingUpRoles   = "Setting up roles and permissions..."
	InstallTaskRoles        = "Seeding roles and permissions"
	InstallRolesSummaryFmt  = "%d roles, %d permissions, %d grants"
	InstallRolesFailedFmt   = "Could not set up roles and permissions: %v"
	InstallRolesRemedyHint  = "  Run tallcms install --skip-checks --skip-migrations after fixing the database."
	InstallSucceeded        = "TallCMS installed successfully!"
	InstallSkipChecksRemind = "Reminder: Ensure TallCmsPlugin::make() is registered in your panel provider."

	InstallNextSteps        = "Next steps:"
	InstallNextVisitFmt     = "Visit %s to access the admin panel"
	InstallNextPages        = "Create your first page in CMS > Pages"
	InstallNextMenus        = "Configure menus in CMS > Menus"
	InstallNextTheme        = "TallDaisy theme is active. Customize it in Appearance > Themes"
	InstallFrontendRoutes   = "Enable frontend routes (optional):"
	InstallEnvAddLine       = "    Add to your .env file:"
	InstallEnvRoutesOn      = "       TALLCMS_ROUTES_ENABLED=true"
	InstallRoutesWarning    = "Warning: Without a prefix, this will register the / route and override your app's homepage."
	InstallRoutesPrefix     = "    To avoid this, set: TALLCMS_ROUTES_PREFIX=cms"
	InstallHomepageHint     = "    Then mark a CMS page as \"Homepage\" in the admin panel."
	InstallFrontendReqs     = "Frontend requirements:"
	InstallAlpineLine1      = "    TallCMS frontend pages require Alpine.js."
	InstallAlpineLine2      = "    Most Laravel apps include it via Livewire. If loading Alpine separately,"
	InstallAlpineLine3      = "    ensure it loads before tallcms.js (Alpine components use alpine:init)."
	InstallStarPrompt       = "All done! Would you like to show some love by starring the TallCMS repo?"
	InstallStarThanks       = "Thank you! Your support means a lot to us."
	InstallRepoURL          = "https://github.com/tallcms/tallcms"
	InstallOpenURLFailedFmt = "Could not open %s: %v"

	InstallTaskDone   = "DONE"
	InstallTaskFailed = "FAIL"
	InstallTaskDots   = "."
)
