// Package routeguard decides which URL paths the CMS's dynamic content router
// may claim without shadowing the admin panel or system routes.
package routeguard

import (
	"strings"

	"github.com/tallcms/cms-installer/internal/config"
)

// Reserved first path segments that always belong to system routes.
var reservedSegments = map[string]struct{}{
	"api":     {},
	"install": {},
}

// Guard is a pure predicate over request paths. It holds no mutable state and
// is safe for concurrent use.
type Guard struct {
	cfg config.Provider
}

// New returns a Guard that reads the panel path from cfg on every call.
func New(cfg config.Provider) Guard {
	return Guard{cfg: cfg}
}

// IsRouteSafe reports whether the content router may claim path.
//
// Paths without a leading slash are rejected rather than normalized. An empty
// panel path disables the panel check, so a panel mounted at the application
// root is protected only by the root and reserved-segment rules.
func (g Guard) IsRouteSafe(path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	if path == "/" {
		return false
	}
	first := firstSegment(path)
	if IsReserved(first) {
		return false
	}
	panel := strings.Trim(g.panelPath(), "/")
	if panel == "" {
		return true
	}
	return first != panel
}

func (g Guard) panelPath() string {
	if g.cfg == nil {
		return ""
	}
	cfg := g.cfg.Current()
	if cfg == nil {
		return ""
	}
	return cfg.Panel.Path
}

// IsReserved reports whether segment is a reserved system route segment.
// The comparison is case-sensitive.
func IsReserved(segment string) bool {
	_, ok := reservedSegments[segment]
	return ok
}

// firstSegment returns the first segment of a path that starts with "/".
func firstSegment(path string) string {
	rest := path[1:]
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		return rest[:idx]
	}
	return rest
}
