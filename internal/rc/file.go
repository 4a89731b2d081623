// Implements ldap.conf(5) as a koanf provider and parser.
package rc

import (
	"bufio"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/maps"
)

// looseFileProvider reads a file if it exists.
type looseFileProvider struct {
	path string
}

func newLooseFileProvider(path string) looseFileProvider {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}
	return looseFileProvider{path: path}
}

func (p looseFileProvider) ReadBytes() ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	slog.Debug("Found LDAP configuration file.", "path", p.path, "err", err)
	return data, err
}

func (looseFileProvider) Read() (map[string]interface{}, error) {
	panic("not implemented")
}

// parser returns ldap.conf content as a plain map for koanf. Option names
// are folded to upper case, values keep the rest of the line.
type parser struct{}

var spaceRe = regexp.MustCompile(`\s+`)

func (parser) Unmarshal(data []byte) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := spaceRe.Split(line, 2)
		if len(fields) < 2 {
			continue
		}
		out[strings.ToUpper(fields[0])] = fields[1]
	}
	return maps.Unflatten(out, "_"), nil
}

func (parser) Marshal(map[string]interface{}) ([]byte, error) {
	panic("not implemented")
}
