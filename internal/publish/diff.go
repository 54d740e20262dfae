package publish

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/tallcms/cms-installer/internal/messages"
)

func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) (string, bool) {
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(diff)
	if len(lines) <= maxLines {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := append(lines[:maxLines:maxLines], fmt.Sprintf(messages.PublishDiffTruncatedFmt, maxLines))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

// normalize drops carriage returns and guarantees a trailing newline so line
// ending differences do not show up as changes.
func normalize(content string) string {
	return ensureTrailingNewline(strings.ReplaceAll(content, "\r\n", "\n"))
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
