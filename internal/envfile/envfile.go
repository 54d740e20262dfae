// Package envfile reads the host application's .env file.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/tallcms/cms-installer/internal/messages"
)

// Load reads and parses the .env file at path. A missing file yields an empty map.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, path, err)
	}
	env, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf(messages.EnvfileParseFailedFmt, path, err)
	}
	return env, nil
}

// Parse decodes KEY=VALUE lines. Blank lines and # comments are skipped, an
// "export " prefix is allowed, and later keys override earlier ones.
func Parse(content string) (map[string]string, error) {
	env := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if ok {
			env[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return env, nil
}

// Bool interprets a value the way the host framework's env() helper does.
// The second result is false when the value is not a recognised boolean.
func Bool(value string) (bool, bool) {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(value), "()")) {
	case "true", "1", "on", "yes":
		return true, true
	case "false", "0", "off", "no", "":
		return false, true
	}
	return false, false
}

func parseLine(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))

	key, value, found := strings.Cut(trimmed, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", false, errors.New(messages.EnvfileExpectedKeyValue)
	}
	value = strings.TrimSpace(value)

	switch {
	case strings.HasPrefix(value, `"`):
		v, err := unquote(value, '"')
		return key, v, err == nil, err
	case strings.HasPrefix(value, `'`):
		v, err := unquote(value, '\'')
		return key, v, err == nil, err
	}
	if i := strings.Index(value, " #"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	return key, value, true, nil
}

// unquote strips the quote pair from value. Double-quoted values honour
// backslash escapes; anything after the closing quote must be a comment.
func unquote(value string, quote byte) (string, error) {
	var b strings.Builder
	for i := 1; i < len(value); i++ {
		c := value[i]
		if quote == '"' && c == '\\' && i+1 < len(value) {
			i++
			switch value[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(value[i])
			}
			continue
		}
		if c == quote {
			rest := strings.TrimSpace(value[i+1:])
			if rest != "" && !strings.HasPrefix(rest, "#") {
				return "", errors.New(messages.EnvfileInvalidQuotedSuffix)
			}
			return b.String(), nil
		}
		b.WriteByte(c)
	}
	return "", errors.New(messages.EnvfileUnterminatedQuotedValue)
}
