// Package doctor runs read-only health checks against a host application.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/envfile"
	"github.com/tallcms/cms-installer/internal/install"
	"github.com/tallcms/cms-installer/internal/messages"
	"github.com/tallcms/cms-installer/internal/root"
	"github.com/tallcms/cms-installer/internal/routeguard"
	"github.com/tallcms/cms-installer/internal/store"
)

// Status is the severity of a check result.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result is one line of the doctor report.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// PendingLister lists migrations that have not been applied.
type PendingLister interface {
	Pending(ctx context.Context) ([]store.Migration, error)
}

var loadConfigFunc = config.Load

// CheckStructure reports which host root markers are present. Missing markers
// only fail when none is found.
func CheckStructure(hostRoot string) []Result {
	var results []Result
	found := 0
	for _, name := range root.Markers {
		info, err := os.Stat(filepath.Join(hostRoot, name))
		if err == nil && info.Mode().IsRegular() {
			found++
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameStructure,
				Message:   fmt.Sprintf(messages.DoctorMarkerFoundFmt, name),
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameStructure,
			Message:   fmt.Sprintf(messages.DoctorMarkerMissingFmt, name),
		})
	}
	if found == 0 {
		for i := range results {
			results[i].Status = StatusFail
		}
		results[len(results)-1].Recommendation = messages.DoctorMarkerRecommend
	}
	return results
}

// CheckConfig loads the config file. A missing file warns and returns the
// defaults so later checks still run; a broken file fails and returns nil.
func CheckConfig(path string) ([]Result, *config.Config) {
	cfg, err := loadConfigFunc(path)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
			Recommendation: messages.DoctorConfigLoadRecommend,
		}}, nil
	}

	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigDefaultsFmt, filepath.Base(path)),
			Recommendation: messages.DoctorConfigDefaultsHint,
		}}, cfg
	}

	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameConfig,
		Message:   messages.DoctorConfigLoaded,
	}}, cfg
}

// CheckInstallation turns the installer's state probe into a result.
func CheckInstallation(state install.State) Result {
	result := Result{CheckName: messages.DoctorCheckNameInstall}
	switch state {
	case install.StateInstalled:
		result.Status = StatusOK
		result.Message = messages.DoctorInstalled
	case install.StateNotInstalled:
		result.Status = StatusWarn
		result.Message = messages.DoctorNotInstalled
		result.Recommendation = messages.DoctorInstallRecommend
	default:
		result.Status = StatusFail
		result.Message = messages.DoctorIndeterminate
		result.Recommendation = messages.DoctorIndeterminateHint
	}
	return result
}

// CheckMigrations reports migrations still waiting to run.
func CheckMigrations(ctx context.Context, lister PendingLister) Result {
	result := Result{CheckName: messages.DoctorCheckNameMigrations}
	pending, err := lister.Pending(ctx)
	switch {
	case err != nil:
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorMigrationsFailedFmt, err)
	case len(pending) == 0:
		result.Status = StatusOK
		result.Message = messages.DoctorMigrationsCurrent
	default:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorMigrationsPendingFmt, len(pending), pending[0].Name)
		result.Recommendation = messages.DoctorInstallRecommend
	}
	return result
}

// CheckPanelPath reports how the route guard will treat the configured panel path.
func CheckPanelPath(cfg *config.Config) Result {
	result := Result{CheckName: messages.DoctorCheckNameRoutes}
	segment := strings.Trim(cfg.Panel.Path, "/")
	switch {
	case segment == "":
		result.Status = StatusWarn
		result.Message = messages.DoctorPanelPathEmpty
		result.Recommendation = messages.DoctorPanelPathEmptyHint
	case routeguard.IsReserved(segment):
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorPanelPathReservedFmt, cfg.Panel.Path)
		result.Recommendation = messages.DoctorPanelPathReservedFix
	default:
		result.Status = StatusOK
		result.Message = fmt.Sprintf(messages.DoctorPanelPathFmt, segment)
	}
	return result
}

// Frontend route settings read from the host .env file.
const (
	EnvRoutesEnabled = "TALLCMS_ROUTES_ENABLED"
	EnvRoutesPrefix  = "TALLCMS_ROUTES_PREFIX"
)

// CheckFrontendRoutes reads the frontend route settings from the .env file at
// envPath and checks the prefix against the route guard.
func CheckFrontendRoutes(envPath string, cfg *config.Config) Result {
	result := Result{CheckName: messages.DoctorCheckNameFrontend}
	env, err := envfile.Load(envPath)
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorFrontendEnvFailedFmt, err)
		return result
	}

	raw := env[EnvRoutesEnabled]
	enabled, ok := envfile.Bool(raw)
	switch {
	case !ok:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorFrontendInvalidBoolFmt, raw)
		result.Recommendation = messages.DoctorFrontendInvalidBoolHint
		return result
	case !enabled:
		result.Status = StatusOK
		result.Message = messages.DoctorFrontendDisabled
		return result
	}

	prefix := strings.Trim(env[EnvRoutesPrefix], "/")
	if prefix == "" {
		result.Status = StatusWarn
		result.Message = messages.DoctorFrontendRootOwned
		result.Recommendation = messages.DoctorFrontendRootHint
		return result
	}
	guard := routeguard.New(config.NewStatic(*cfg))
	if !guard.IsRouteSafe("/" + prefix) {
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorFrontendPrefixClashFmt, prefix)
		result.Recommendation = messages.DoctorFrontendPrefixClashHint
		return result
	}
	result.Status = StatusOK
	result.Message = fmt.Sprintf(messages.DoctorFrontendPrefixFmt, prefix)
	return result
}

// CheckPrerequisites reports every installer prerequisite with where its
// answer came from.
func CheckPrerequisites(cfg *config.Config, inspector install.Inspector) []Result {
	checks := install.Prerequisites(cfg, inspector)
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		source := check.Detection.Source()
		if check.Passed() {
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: check.Check,
				Message:   fmt.Sprintf(messages.DoctorPrereqDetailFmt, messages.DoctorPrereqSatisfied, source),
			})
			continue
		}
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      check.Check,
			Message:        fmt.Sprintf(messages.DoctorPrereqDetailFmt, check.Issue.Message, source),
			Recommendation: check.Issue.Remediation,
		})
	}
	return results
}

// Worst returns the most severe status in results.
func Worst(results []Result) Status {
	worst := StatusOK
	for _, r := range results {
		switch r.Status {
		case StatusFail:
			return StatusFail
		case StatusWarn:
			worst = StatusWarn
		}
	}
	return worst
}
