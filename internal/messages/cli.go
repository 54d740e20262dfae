package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse   = "tallcms"
	RootShort = "TallCMS installer and route tools"

	RootFlagRoot    = "Host application root (defaults to the nearest directory containing artisan or composer.json)"
	RootFlagConfig  = "Path to the TallCMS config file (defaults to config/tallcms.toml under the host root)"
	RootFlagVerbose = "Emit structured debug logs to stderr"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// InstallUse is the install command name.
	InstallUse   = "install"
	InstallShort = "Install TallCMS - handles migrations, roles, and permissions"

	InstallFlagSkipChecks     = "Skip prerequisite checks"
	InstallFlagSkipMigrations = "Skip running migrations"
	InstallFlagSkipSetup      = "Skip roles and permissions setup"
	InstallFlagForce          = "Force installation even if already installed"

	// PostInstallUse is the hidden post-install command name.
	PostInstallUse   = "post-install"
	PostInstallShort = "Display post-installation welcome message"

	PostInstallSuccess  = "  TallCMS installed successfully!"
	PostInstallNext     = "  Next steps:"
	PostInstallCdFmt    = "    1. cd %s"
	PostInstallNpm      = "    2. npm install && npm run build"
	PostInstallServe    = "    3. php artisan serve"
	PostInstallVisit    = "    4. Visit http://localhost:8000/install to complete setup"
	PostInstallDocsLine = "  Documentation: https://tallcms.com/docs"

	// RoutesUse is the routes command name.
	RoutesUse         = "routes"
	RoutesShort       = "Inspect which paths the dynamic content router may claim"
	RoutesCheckUse    = "check <path>..."
	RoutesCheckShort  = "Report whether each path is safe for the content router"
	RoutesVerdictFmt  = "%s %s\n"
	RoutesSafeLabel   = "[SAFE]    "
	RoutesUnsafeLabel = "[RESERVED]"
	RoutesHasUnsafe   = "one or more paths are reserved for the panel or system routes"

	// PanelUse is the panel command name.
	PanelUse      = "panel"
	PanelShort    = "Panel URL helpers"
	PanelURLUse   = "url [subpath]"
	PanelURLShort = "Print the panel URL for an optional subpath"

	PanelRouteUse      = "route <name> [key=value]..."
	PanelRouteShort    = "Resolve a TallCMS panel route by name"
	PanelRouteFlagList = "List the known panel route names"
	PanelRouteParamFmt = "invalid route parameter %q (expected key=value)"
	PanelRouteNameArg  = "route name is required unless --list is set"

	RoutesFlagStdin = "Read paths from stdin, one per line, reloading the config file when it changes"

	RootHostNotFoundFmt = "no host application found from %s (expected artisan or composer.json); pass --root"

	PromptAffirmative = "Yes"
	PromptNegative    = "No"

	// ThemeUse is the theme command name.
	ThemeUse             = "theme"
	ThemeShort           = "Inspect frontend themes"
	ThemeListUse         = "list"
	ThemeListShort       = "List bundled and published themes, marking the active one"
	ThemeListLineFmt     = "%s %s %-12s %s\n"
	ThemeActiveMarker    = "*"
	ThemeBundled         = "bundled"
	ThemePublished       = "published"
	ThemeNotInstalled    = "not published"
	ThemeActiveFailedFmt = "could not read the active theme: %v\n"

	RoutesWatchFailedFmt = "config hot reload disabled: %v\n"
	RoutesReadStdinFmt   = "read stdin: %w"
	RoutesPathsRequired  = "at least one path is required unless --stdin is set"
)

// Host root discovery.
const (
	RootStartPathRequired = "start path is required"
	RootResolvePathFmt    = "resolve %s: %w"
	RootStatMarkerFmt     = "stat %s: %w"
)
