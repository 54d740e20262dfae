package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check the host application, configuration, and database for TallCMS"

	DoctorHealthCheckFmt = "Checking TallCMS health in %s...\n"

	DoctorCheckNameStructure  = "Structure"
	DoctorCheckNameConfig     = "Config"
	DoctorCheckNameInstall    = "Install"
	DoctorCheckNameMigrations = "Migrations"
	DoctorCheckNameRoutes     = "Routes"

	DoctorMarkerFoundFmt      = "Found %s"
	DoctorMarkerMissingFmt    = "Missing %s"
	DoctorMarkerRecommend     = "Run tallcms from the host application root or pass --root."
	DoctorConfigLoaded        = "Configuration loaded successfully"
	DoctorConfigDefaultsFmt   = "%s not published; using defaults"
	DoctorConfigDefaultsHint  = "Run `tallcms install` to publish it."
	DoctorConfigLoadFailedFmt = "Failed to load configuration: %v"
	DoctorConfigLoadRecommend = "Fix the file or delete it and rerun `tallcms install` to publish a fresh copy."

	DoctorInstalled            = "TallCMS is installed"
	DoctorNotInstalled         = "TallCMS is not installed"
	DoctorIndeterminate        = "Could not determine installation state (database unreadable)"
	DoctorInstallRecommend     = "Run `tallcms install`."
	DoctorIndeterminateHint    = "Check database.path in config/tallcms.toml and file permissions."
	DoctorMigrationsCurrent    = "No pending migrations"
	DoctorMigrationsPendingFmt = "%d pending migration(s), next: %s"
	DoctorMigrationsFailedFmt  = "Failed to list migrations: %v"

	DoctorPanelPathFmt         = "Dynamic routes cannot shadow /%s"
	DoctorPanelPathEmpty       = "panel.path is empty; the content router does not guard a panel prefix"
	DoctorPanelPathEmptyHint   = "Set panel.path, or give frontend routes a prefix with TALLCMS_ROUTES_PREFIX."
	DoctorPanelPathReservedFmt = "panel.path %q collides with a reserved system prefix"
	DoctorPanelPathReservedFix = "Choose a panel path other than api or install."

	DoctorCheckNameFrontend       = "Frontend"
	DoctorFrontendDisabled        = "Frontend routes are disabled (TALLCMS_ROUTES_ENABLED)"
	DoctorFrontendPrefixFmt       = "Frontend routes are served under /%s"
	DoctorFrontendRootOwned       = "Frontend routes own / and override the application homepage"
	DoctorFrontendRootHint        = "Set TALLCMS_ROUTES_PREFIX=cms in .env to keep the homepage."
	DoctorFrontendPrefixClashFmt  = "TALLCMS_ROUTES_PREFIX %q collides with the panel or a reserved prefix"
	DoctorFrontendPrefixClashHint = "Choose a prefix other than the panel path, api, or install."
	DoctorFrontendInvalidBoolFmt  = "TALLCMS_ROUTES_ENABLED has an unrecognised value %q"
	DoctorFrontendInvalidBoolHint = "Use true or false."
	DoctorFrontendEnvFailedFmt    = "Failed to read .env: %v"

	DoctorPrereqSatisfied = "Satisfied"
	DoctorPrereqDetailFmt = "%s (%s)"

	DoctorFailureSummary = "Some checks failed. Please address the items above."
	DoctorFailureError   = "doctor checks failed"
	DoctorWarnSummary    = "Checks passed with warnings."
	DoctorSuccessSummary = "All systems go. TallCMS is ready."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       -> "
	DoctorRecommendationIndent = "          "
)
