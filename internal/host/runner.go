// Package host runs commands in the host application, such as the framework
// console used to publish panel assets.
package host

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/messages"
)

// PanelAssetsCommand publishes the admin panel's compiled assets.
const PanelAssetsCommand = "filament:assets"

// Runner invokes the host console command (for example "php artisan") from the
// host root.
type Runner struct {
	Command []string
	Dir     string
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *zap.Logger
}

// Run executes the host command with args appended.
func (r Runner) Run(ctx context.Context, args ...string) error {
	if len(r.Command) == 0 || strings.TrimSpace(r.Command[0]) == "" {
		return fmt.Errorf(messages.HostCommandRequired)
	}
	argv := append(append([]string{}, r.Command[1:]...), args...)
	cmd := exec.CommandContext(ctx, r.Command[0], argv...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	display := strings.Join(append([]string{r.Command[0]}, argv...), " ")
	if r.Logger != nil {
		r.Logger.Debug("running host command", zap.String("command", display), zap.String("dir", r.Dir))
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf(messages.HostCommandFailedFmt, display, err)
	}
	return nil
}

// PublishPanelAssets runs the host's panel asset publisher.
func (r Runner) PublishPanelAssets(ctx context.Context) error {
	return r.Run(ctx, PanelAssetsCommand)
}

// openers maps GOOS to the command that opens a URL in the default browser.
var openers = map[string][]string{
	"darwin":  {"open"},
	"windows": {"cmd", "/c", "start", ""},
}

// OpenURL opens url in the default browser.
func OpenURL(ctx context.Context, url string) error {
	argv, ok := openers[runtime.GOOS]
	if !ok {
		argv = []string{"xdg-open"}
	}
	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf(messages.HostOpenURLFailedFmt, url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
