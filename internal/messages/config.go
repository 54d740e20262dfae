package messages

// Config messages for configuration loading and validation.
const (
	// ConfigReadFailedFmt formats config read errors.
	ConfigReadFailedFmt       = "failed to read config %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %v"
	ConfigValidationGuidance  = "(compare with the published template: tallcms install --force)"

	ConfigPanelIDRequiredFmt     = "%s: panel.id is required"
	ConfigPanelPathSegmentFmt    = "%s: panel.path must be a single path segment, got %q"
	ConfigDatabasePrefixFmt      = "%s: database.prefix may only contain letters, digits, and underscores, got %q"
	ConfigDatabasePathRequired   = "%s: database.path is required"
	ConfigAuthGuardRequiredFmt   = "%s: auth.guard is required"
	ConfigAppURLInvalidFmt       = "%s: app.url must be an absolute http(s) URL, got %q"
	ConfigHostCommandRequiredFmt = "%s: host.command must name at least one executable"
	ConfigExpandPathFmt          = "expand database.path %q: %w"

	ConfigWatchFailedFmt  = "watch config %s: %w"
	ConfigReloadFailedFmt = "reload config %s: %w"
)
