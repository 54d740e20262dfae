package panel

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/messages"
)

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)(\?)?\}`)

// RouteTable is an in-memory named-route resolver. Patterns use {name}
// placeholders; {name?} marks an optional one. Parameters that do not fill a
// placeholder are appended as a sorted query string.
type RouteTable struct {
	baseURL string
	routes  map[string]string
}

// NewRouteTable returns an empty table resolving against baseURL.
func NewRouteTable(baseURL string) *RouteTable {
	return &RouteTable{baseURL: strings.TrimRight(baseURL, "/"), routes: map[string]string{}}
}

// Add registers pattern under name, replacing any previous entry.
func (t *RouteTable) Add(name string, pattern string) {
	t.routes[name] = "/" + strings.TrimLeft(pattern, "/")
}

// Names returns the registered route names in sorted order.
func (t *RouteTable) Names() []string {
	names := make([]string, 0, len(t.routes))
	for name := range t.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// URL resolves name with params.
func (t *RouteTable) URL(name string, params map[string]any) (string, error) {
	pattern, ok := t.routes[name]
	if !ok {
		return "", fmt.Errorf(messages.PanelRouteNotDefinedFmt, name)
	}
	used := make(map[string]bool, len(params))
	var missing string
	path := placeholder.ReplaceAllStringFunc(pattern, func(match string) string {
		sub := placeholder.FindStringSubmatch(match)
		key, optional := sub[1], sub[2] == "?"
		value, ok := params[key]
		if !ok {
			if !optional && missing == "" {
				missing = key
			}
			return ""
		}
		used[key] = true
		return url.PathEscape(fmt.Sprint(value))
	})
	if missing != "" {
		return "", fmt.Errorf(messages.PanelRouteMissingParam, missing, name)
	}
	path = repeatedSlashes.ReplaceAllString(path, "/")
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}

	query := url.Values{}
	for key, value := range params {
		if used[key] {
			continue
		}
		query.Set(key, fmt.Sprint(value))
	}
	if len(query) == 0 {
		return t.baseURL + path, nil
	}
	return t.baseURL + path + "?" + query.Encode(), nil
}

// cmsPanelRoutes lists the routes the CMS plugin registers on its panel,
// keyed by route suffix.
var cmsPanelRoutes = map[string]string{
	"pages.dashboard":                     "",
	"pages.site-settings":                 "site-settings",
	"pages.plugin-licenses":               "plugin-licenses",
	"pages.theme-manager":                 "theme-manager",
	"resources.cms-pages.index":           "cms-pages",
	"resources.cms-pages.create":          "cms-pages/create",
	"resources.cms-pages.edit":            "cms-pages/{record}/edit",
	"resources.cms-posts.index":           "cms-posts",
	"resources.cms-posts.create":          "cms-posts/create",
	"resources.cms-posts.edit":            "cms-posts/{record}/edit",
	"resources.cms-categories.index":      "cms-categories",
	"resources.tallcms-menus.index":       "tallcms-menus",
	"resources.tallcms-menus.edit":        "tallcms-menus/{record}/edit",
	"resources.shield.roles.index":        "shield/roles",
	"resources.shield.roles.edit":         "shield/roles/{record}/edit",
	"resources.tallcms-media.index":       "tallcms-media",
	"resources.tallcms-media.edit":        "tallcms-media/{record}/edit",
	"resources.tallcms-contact-subs.view": "contact-submissions/{record}",
}

// CMSRoutes returns a table with the CMS panel routes registered under the
// configured panel id and path.
func CMSRoutes(cfg *config.Config) *RouteTable {
	table := NewRouteTable(cfg.App.URL)
	panelPath := strings.Trim(cfg.Panel.Path, "/")
	for suffix, sub := range cmsPanelRoutes {
		name := fmt.Sprintf("%s.%s.%s", RouteNamePrefix, cfg.Panel.ID, suffix)
		table.Add(name, panelPath+"/"+sub)
	}
	return table
}
