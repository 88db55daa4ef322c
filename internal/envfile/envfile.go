package envfile

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
)

// Map is an ordered set of environment variables.
type Map struct {
	keys   []string
	values map[string]string
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]string)}
}

// Set stores value under key. An existing key keeps its position.
func (m *Map) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of variables.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the variable names in file order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each calls fn for every variable in file order.
func (m *Map) Each(fn func(key, value string)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// Load reads the env file at path.
//
// Returns ErrEnvFileNotFound if nothing exists at path. An empty file, or one
// with no KEY=VALUE lines, yields an empty Map.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrEnvFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read env file at %s: %w", path, err)
	}
	return Parse(data)
}

// Parse reads KEY=VALUE lines from data.
func Parse(data []byte) (*Map, error) {
	m := NewMap()

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		m.Set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan env file: %w", err)
	}

	return m, nil
}

func parseLine(line string) (string, string, bool) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(key)
	if rest, ok := strings.CutPrefix(key, "export "); ok {
		key = strings.TrimSpace(rest)
	}
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}

	return key, parseValue(value), true
}

func parseValue(raw string) string {
	if quoted := strings.TrimSpace(raw); len(quoted) >= 2 {
		switch quote := quoted[0]; quote {
		case '\'':
			if end := strings.IndexByte(quoted[1:], '\''); end >= 0 {
				return quoted[1 : end+1]
			}
		case '"':
			if end := closingDoubleQuote(quoted); end > 0 {
				return unescapeDouble(quoted[1:end])
			}
		}
	}

	// Unquoted values end at a '#' that follows whitespace.
	for i := 1; i < len(raw); i++ {
		if raw[i] == '#' && (raw[i-1] == ' ' || raw[i-1] == '\t') {
			raw = raw[:i]
			break
		}
	}
	return strings.TrimSpace(raw)
}

func closingDoubleQuote(raw string) int {
	for i := 1; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

var doubleQuoteEscapes = strings.NewReplacer(
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
	`\"`, `"`,
	`\\`, `\`,
)

func unescapeDouble(s string) string {
	return doubleQuoteEscapes.Replace(s)
}

// Normalize maps an environment variable name onto a GitHub secret name.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - ('a' - 'A'))
		case c == '-':
			b.WriteByte('_')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
