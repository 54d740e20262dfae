// Package panel builds URLs relative to the host admin panel.
package panel

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tallcms/cms-installer/internal/config"
)

// RouteNamePrefix is the namespace the host framework uses for panel routes.
const RouteNamePrefix = "filament"

var repeatedSlashes = regexp.MustCompile(`/{2,}`)

// Resolver turns a fully-qualified route name into a URL.
type Resolver interface {
	URL(name string, params map[string]any) (string, error)
}

// Helper builds panel URLs from the current configuration.
type Helper struct {
	cfg    config.Provider
	routes Resolver
}

// NewHelper returns a Helper reading cfg on every call and resolving named
// routes through routes.
func NewHelper(cfg config.Provider, routes Resolver) Helper {
	return Helper{cfg: cfg, routes: routes}
}

// URL joins the application base URL, the panel path, and subpath with single
// slashes. With an empty panel path and subpath it returns the base URL as is.
func (h Helper) URL(subpath string) string {
	cfg := h.cfg.Current()
	base := strings.TrimRight(cfg.App.URL, "/")
	parts := make([]string, 0, 2)
	if p := strings.Trim(cfg.Panel.Path, "/"); p != "" {
		parts = append(parts, p)
	}
	if s := strings.Trim(subpath, "/"); s != "" {
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return base
	}
	path := repeatedSlashes.ReplaceAllString("/"+strings.Join(parts, "/"), "/")
	return base + path
}

// RouteName returns the fully-qualified route name for a panel route suffix.
func (h Helper) RouteName(suffix string) string {
	return fmt.Sprintf("%s.%s.%s", RouteNamePrefix, h.cfg.Current().Panel.ID, suffix)
}

// Route resolves a panel route by suffix, e.g. "pages.plugin-licenses".
// params are passed to the resolver unchanged.
func (h Helper) Route(suffix string, params map[string]any) (string, error) {
	return h.routes.URL(h.RouteName(suffix), params)
}
