// Package root locates the host application root.
package root

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tallcms/cms-installer/internal/messages"
)

// Markers identify a host application root. The first one found wins.
var Markers = []string{"artisan", "composer.json"}

// FindHostRoot walks up from start to the nearest directory holding a marker file.
// It returns found=false when no ancestor qualifies.
func FindHostRoot(start string) (string, bool, error) {
	if start == "" {
		return "", false, errors.New(messages.RootStartPathRequired)
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf(messages.RootResolvePathFmt, start, err)
	}

	for {
		ok, err := hasMarker(dir)
		if err != nil {
			return "", false, err
		}
		if ok {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// ResolveHostRoot returns explicit when set, else the discovered root above start.
func ResolveHostRoot(explicit string, start string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf(messages.RootResolvePathFmt, explicit, err)
		}
		return abs, nil
	}
	dir, found, err := FindHostRoot(start)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf(messages.RootHostNotFoundFmt, start)
	}
	return dir, nil
}

func hasMarker(dir string) (bool, error) {
	for _, name := range Markers {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return false, fmt.Errorf(messages.RootStatMarkerFmt, path, err)
		}
		if info.Mode().IsRegular() {
			return true, nil
		}
	}
	return false, nil
}
