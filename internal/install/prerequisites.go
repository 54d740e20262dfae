package install

import (
	"fmt"

	"github.com/tallcms/cms-installer/internal/config"
	"github.com/tallcms/cms-installer/internal/detect"
	"github.com/tallcms/cms-installer/internal/messages"
)

// Issue is one failed prerequisite.
type Issue struct {
	Check       string
	Message     string
	Remediation string
	Detection   detect.Detection
}

// CheckResult is the outcome of one prerequisite check. Issue is nil when the
// check passed.
type CheckResult struct {
	Check     string
	Detection detect.Detection
	Issue     *Issue
}

// Passed reports whether the check passed.
func (r CheckResult) Passed() bool {
	return r.Issue == nil
}

// Prerequisites runs every prerequisite check in report order. A check whose
// answer is unknown fails.
func Prerequisites(cfg *config.Config, inspector Inspector) []CheckResult {
	userModel := inspector.ResolveUserModel(cfg)
	checks := []struct {
		name        string
		detection   detect.Detection
		message     string
		remediation string
	}{
		{
			name:        messages.PrereqCheckUserModel,
			detection:   inspector.UserModelHasRoles(userModel),
			message:     fmt.Sprintf(messages.PrereqUserModelMissingRolesFmt, userModel),
			remediation: messages.PrereqUserModelFix,
		},
		{
			name:        messages.PrereqCheckPanel,
			detection:   inspector.HasPanel(),
			message:     messages.PrereqPanelMissing,
			remediation: messages.PrereqPanelFix,
		},
		{
			name:        messages.PrereqCheckAuthorization,
			detection:   inspector.AuthorizationPluginInstalled(),
			message:     messages.PrereqShieldMissing,
			remediation: messages.PrereqShieldFix,
		},
		{
			name:        messages.PrereqCheckPlugin,
			detection:   inspector.PluginRegistered(),
			message:     messages.PrereqPluginMissing,
			remediation: messages.PrereqPluginFix,
		},
	}

	results := make([]CheckResult, 0, len(checks))
	for _, check := range checks {
		result := CheckResult{Check: check.name, Detection: check.detection}
		if !check.detection.Found() {
			result.Issue = &Issue{
				Check:       check.name,
				Message:     check.message,
				Remediation: check.remediation,
				Detection:   check.detection,
			}
		}
		results = append(results, result)
	}
	return results
}

// Issues returns the failed checks' issues in order.
func Issues(results []CheckResult) []Issue {
	var issues []Issue
	for _, result := range results {
		if result.Issue != nil {
			issues = append(issues, *result.Issue)
		}
	}
	return issues
}
