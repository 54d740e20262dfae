package messages

// Messages for storage, publishing, theming, and host command collaborators.
const (
	StoreOpenFailedFmt        = "open database %s: %w"
	StoreCreateDirFailedFmt   = "create database directory for %s: %w"
	StoreQueryFailedFmt       = "query %s: %w"
	StoreInvalidIdentFmt      = "invalid identifier %q"
	StoreMigrationFailedFmt   = "migration %s failed: %w"
	StoreMigrationsTableFmt   = "prepare migrations table: %w"
	StoreReadMigrationsFmt    = "read migrations from %s: %w"
	StoreDuplicateMigration   = "duplicate migration %s"
	StorePermissionMissingFmt = "permission %q not found"

	PublishReadTemplateFmt  = "failed to read template %s: %w"
	PublishWriteFailedFmt   = "failed to write %s: %w"
	PublishReadFailedFmt    = "failed to read %s: %w"
	PublishCreateDirFmt     = "failed to create directory %s: %w"
	PublishWalkTemplatesFmt = "failed to walk templates %s: %w"
	PublishStatFailedFmt    = "failed to stat %s: %w"
	PublishDiffTruncatedFmt = "... (truncated to %d lines)"

	ThemeUnknownFmt     = "unknown theme %q"
	ThemeReadConfigFmt  = "read theme config %s: %w"
	ThemeParseConfigFmt = "parse theme config %s: %w"
	ThemeWriteConfigFmt = "write theme config %s: %w"
	ThemeCopyAssetsFmt  = "copy theme %s assets: %w"
	ThemeActivateLogFmt = "activate theme %s"

	HostCommandRequired  = "host command is required"
	HostCommandFailedFmt = "host command %q failed: %w"
	HostOpenURLFailedFmt = "open %s: %w"

	PanelRouteNotDefinedFmt = "route [%s] not defined"
	PanelRouteMissingParam  = "missing required parameter %q for route [%s]"
)

// Host .env parsing.
const (
	EnvfileReadFailedFmt           = "read %s: %w"
	EnvfileParseFailedFmt          = "parse %s: %w"
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "invalid trailing characters after quoted value"
)
