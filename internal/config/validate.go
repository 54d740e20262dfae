package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/tallcms/cms-installer/internal/messages"
)

// The prefix is spliced into table names, so it is held to identifier characters.
var prefixPattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	if strings.TrimSpace(c.Panel.ID) == "" {
		return fmt.Errorf(messages.ConfigPanelIDRequiredFmt, path)
	}
	if segment := strings.Trim(c.Panel.Path, "/"); strings.Contains(segment, "/") {
		return fmt.Errorf(messages.ConfigPanelPathSegmentFmt, path, c.Panel.Path)
	}
	if !prefixPattern.MatchString(c.Database.Prefix) {
		return fmt.Errorf(messages.ConfigDatabasePrefixFmt, path, c.Database.Prefix)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf(messages.ConfigDatabasePathRequired, path)
	}
	if strings.TrimSpace(c.Auth.Guard) == "" {
		return fmt.Errorf(messages.ConfigAuthGuardRequiredFmt, path)
	}
	parsed, err := url.Parse(c.App.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf(messages.ConfigAppURLInvalidFmt, path, c.App.URL)
	}
	if len(c.Host.Command) == 0 || strings.TrimSpace(c.Host.Command[0]) == "" {
		return fmt.Errorf(messages.ConfigHostCommandRequiredFmt, path)
	}
	return nil
}
