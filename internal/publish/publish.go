// Package publish copies the embedded config template, permission schema, and
// static assets into a host application.
package publish

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/fsutil"
	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/templates"
)

// DefaultDiffMaxLines bounds the config diff preview.
const DefaultDiffMaxLines = 40

// Publisher writes embedded files into the host application.
type Publisher struct {
	sys          fsutil.System
	paths        config.Paths
	diffMaxLines int
	logger       *zap.Logger
}

// New returns a Publisher. diffMaxLines <= 0 selects DefaultDiffMaxLines.
func New(sys fsutil.System, paths config.Paths, diffMaxLines int, logger *zap.Logger) *Publisher {
	if diffMaxLines <= 0 {
		diffMaxLines = DefaultDiffMaxLines
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{sys: sys, paths: paths, diffMaxLines: diffMaxLines, logger: logger}
}

// PermissionSchema copies the permission schema migration into the host
// migrations directory. It reports false when the file is already there.
func (p *Publisher) PermissionSchema() (bool, error) {
	dest := filepath.Join(p.paths.MigrationsDir, path.Base(templates.PermissionMigration))
	exists, err := fsutil.Exists(p.sys, dest)
	if err != nil {
		return false, fmt.Errorf(messages.PublishStatFailedFmt, dest, err)
	}
	if exists {
		return false, nil
	}
	if err := p.writeTemplate(templates.PermissionMigration, dest); err != nil {
		return false, err
	}
	return true, nil
}

// ConfigResult describes the outcome of Config.
type ConfigResult struct {
	// Written is true when the config file was created.
	Written bool
	// Diff is a unified diff from the existing file to the template, empty when
	// they match or the file was written.
	Diff      string
	Truncated bool
}

// Config writes config/tallcms.toml from the template when missing. An
// existing file is never modified.
func (p *Publisher) Config() (ConfigResult, error) {
	dest := p.paths.ConfigPath
	current, err := p.sys.ReadFile(dest)
	if err != nil {
		if !os.IsNotExist(err) {
			return ConfigResult{}, fmt.Errorf(messages.PublishReadFailedFmt, dest, err)
		}
		if err := p.writeTemplate(templates.ConfigTemplate, dest); err != nil {
			return ConfigResult{}, err
		}
		return ConfigResult{Written: true}, nil
	}

	template, err := templates.Read(templates.ConfigTemplate)
	if err != nil {
		return ConfigResult{}, fmt.Errorf(messages.PublishReadTemplateFmt, templates.ConfigTemplate, err)
	}
	from, to := normalize(string(current)), normalize(string(template))
	if from == to {
		return ConfigResult{}, nil
	}
	diff, truncated := renderTruncatedUnifiedDiff("config/tallcms.toml (current)", "config/tallcms.toml (template)", from, to, p.diffMaxLines)
	return ConfigResult{Diff: diff, Truncated: truncated}, nil
}

// Assets copies every embedded static asset into public/vendor/tallcms,
// overwriting what is there, and returns the number of files written.
func (p *Publisher) Assets() (int, error) {
	return p.copyTree(templates.AssetsDir, p.paths.PublicAssetsDir)
}

// copyTree copies the embedded tree at root into dest.
func (p *Publisher) copyTree(root string, dest string) (int, error) {
	count := 0
	err := templates.Walk(root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(name, root), "/")
		target := filepath.Join(dest, filepath.FromSlash(rel))
		if d.IsDir() {
			if err := p.sys.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf(messages.PublishCreateDirFmt, target, err)
			}
			return nil
		}
		if err := p.writeTemplate(name, target); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf(messages.PublishWalkTemplatesFmt, root, err)
	}
	return count, nil
}

func (p *Publisher) writeTemplate(name string, dest string) error {
	data, err := templates.Read(name)
	if err != nil {
		return fmt.Errorf(messages.PublishReadTemplateFmt, name, err)
	}
	if err := p.sys.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf(messages.PublishCreateDirFmt, filepath.Dir(dest), err)
	}
	if err := p.sys.WriteFileAtomic(dest, data, 0o644); err != nil {
		return fmt.Errorf(messages.PublishWriteFailedFmt, dest, err)
	}
	p.logger.Debug("published", zap.String("template", name), zap.String("dest", dest))
	return nil
}
