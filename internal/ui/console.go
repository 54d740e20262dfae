// Package ui renders installer output on a terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/tallcms/cms-installer/internal/install"
	"github.com/tallcms/cms-installer/internal/messages"
)

// DefaultWidth is the column a task status is right-aligned to.
const DefaultWidth = 80

// minDots keeps a visible leader between a long task description and its status.
const minDots = 3

// Console writes labelled status lines, dotted task lines, and bullet lists.
// It implements install.Reporter.
type Console struct {
	out    io.Writer
	width  int
	banner lipgloss.Style
	tag    lipgloss.Style

	info   *color.Color
	warn   *color.Color
	errorC *color.Color
	done   *color.Color
	failed *color.Color
	muted  *color.Color
}

var _ install.Reporter = (*Console)(nil)

// NewConsole returns a Console writing to out. A non-positive width uses DefaultWidth.
func NewConsole(out io.Writer, width int) *Console {
	if width <= 0 {
		width = DefaultWidth
	}
	renderer := lipgloss.NewRenderer(out)
	return &Console{
		out:   out,
		width: width,
		banner: renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6366F1")).
			Padding(0, 2),
		tag:    renderer.NewStyle().Faint(true),
		info:   color.New(color.BgBlue, color.FgWhite, color.Bold),
		warn:   color.New(color.BgYellow, color.FgBlack, color.Bold),
		errorC: color.New(color.BgRed, color.FgWhite, color.Bold),
		done:   color.New(color.FgGreen, color.Bold),
		failed: color.New(color.FgRed, color.Bold),
		muted:  color.New(color.FgHiBlack),
	}
}

// Banner prints the product banner.
func (c *Console) Banner() {
	title := c.banner.Render(messages.UIBannerTitle)
	_, _ = fmt.Fprintln(c.out)
	_, _ = fmt.Fprintln(c.out, lipgloss.JoinHorizontal(lipgloss.Center, title, " ", c.tag.Render(messages.UIBannerTag)))
	_, _ = fmt.Fprintln(c.out)
}

// Info prints an informational line.
func (c *Console) Info(msg string) {
	c.labelled(c.info, messages.UILabelInfo, msg)
}

// Warn prints a warning line.
func (c *Console) Warn(msg string) {
	c.labelled(c.warn, messages.UILabelWarn, msg)
}

// Error prints an error line.
func (c *Console) Error(msg string) {
	c.labelled(c.errorC, messages.UILabelError, msg)
}

// Line prints msg verbatim.
func (c *Console) Line(msg string) {
	_, _ = fmt.Fprintln(c.out, msg)
}

// NewLine prints an empty line.
func (c *Console) NewLine() {
	_, _ = fmt.Fprintln(c.out)
}

// Task runs fn and prints one dotted line with its outcome.
// The status is DONE, FAIL, or the outcome detail when one is set.
func (c *Console) Task(description string, fn func() install.TaskOutcome) {
	outcome := fn()

	status := c.done.Sprint(messages.InstallTaskDone)
	plain := messages.InstallTaskDone
	switch {
	case outcome.Failed:
		status = c.failed.Sprint(messages.InstallTaskFailed)
		plain = messages.InstallTaskFailed
	case outcome.Detail != "":
		status = c.muted.Sprint(outcome.Detail)
		plain = outcome.Detail
	}

	_, _ = fmt.Fprintf(c.out, messages.UITaskFmt, description, c.muted.Sprint(c.leader(description, plain)), status)
}

// BulletList prints each item on its own bulleted line.
func (c *Console) BulletList(items []string) {
	for _, item := range items {
		_, _ = fmt.Fprintf(c.out, messages.UIBulletFmt, item)
	}
}

func (c *Console) labelled(style *color.Color, label string, msg string) {
	_, _ = fmt.Fprintf(c.out, messages.UILabelFmt, style.Sprint(label), msg)
}

// leader returns the dots between a description and its status.
func (c *Console) leader(description string, status string) string {
	// Two leading spaces and the two separators in UITaskFmt.
	used := 4 + lipgloss.Width(description) + lipgloss.Width(status)
	n := c.width - used
	if n < minDots {
		n = minDots
	}
	return strings.Repeat(messages.InstallTaskDots, n)
}
