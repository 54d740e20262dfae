package messages

// Console labels and layout for operator output.
const (
	UILabelInfo  = " INFO "
	UILabelWarn  = " WARN "
	UILabelError = " ERROR "

	UIBannerTitle = "TallCMS"
	UIBannerTag   = "Filament CMS plugin installer"
	UIBulletFmt   = "  • %s\n"
	UILabelFmt    = "  %s %s\n"
	UITaskFmt     = "  %s %s %s\n"
)
