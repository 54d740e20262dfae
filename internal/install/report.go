package install

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/messages"
)

func (o *Orchestrator) showCompletion(ctx context.Context, opts Options) {
	o.out.NewLine()
	o.out.Info(messages.InstallSucceeded)
	o.out.NewLine()

	if opts.SkipChecks {
		o.out.Warn(messages.InstallSkipChecksRemind)
		o.out.NewLine()
	}

	panelPath := o.deps.Inspector.PanelPath(o.deps.Config.Current())

	o.out.Info(messages.InstallNextSteps)
	o.out.BulletList([]string{
		fmt.Sprintf(messages.InstallNextVisitFmt, panelPath),
		messages.InstallNextPages,
		messages.InstallNextMenus,
		messages.InstallNextTheme,
	})
	o.out.NewLine()

	o.out.Info(messages.InstallFrontendRoutes)
	o.out.NewLine()
	o.out.Line(messages.InstallEnvAddLine)
	o.out.Line(messages.InstallEnvRoutesOn)
	o.out.NewLine()
	o.out.Warn(messages.InstallRoutesWarning)
	o.out.Line(messages.InstallRoutesPrefix)
	o.out.NewLine()
	o.out.Line(messages.InstallHomepageHint)
	o.out.NewLine()

	o.out.Info(messages.InstallFrontendReqs)
	o.out.Line(messages.InstallAlpineLine1)
	o.out.Line(messages.InstallAlpineLine2)
	o.out.Line(messages.InstallAlpineLine3)
	o.out.NewLine()

	o.askForStar(ctx)
}

// askForStar offers to open the project repository. It only runs on an
// interactive terminal, signalled by a non-nil Confirm.
func (o *Orchestrator) askForStar(ctx context.Context) {
	if o.deps.Confirm == nil {
		return
	}
	ok, err := o.deps.Confirm(messages.InstallStarPrompt)
	if err != nil {
		o.logger.Debug("star prompt failed", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if o.deps.OpenURL != nil {
		if err := o.deps.OpenURL(ctx, messages.InstallRepoURL); err != nil {
			o.out.Warn(fmt.Sprintf(messages.InstallOpenURLFailedFmt, messages.InstallRepoURL, err))
			return
		}
	}
	o.out.Info(messages.InstallStarThanks)
}
