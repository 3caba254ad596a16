package claudedir

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// Encode maps a real filesystem path to its projects/ directory name.
// Claude Code replaces every non-alphanumeric character with '-', so
// the mapping is many-to-one: '/', '.', '_', and literal '-' all
// collapse to the same byte and cannot be told apart afterwards.
func Encode(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, r := range path {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Decode is the naive inverse of Encode: a leading '-' becomes the root
// separator and every remaining '-' becomes '/'. Because the encoding
// is lossy this is only an approximation; callers that used it must
// flag the result as inferred.
func Decode(encoded string) string {
	if strings.HasPrefix(encoded, "-") {
		return "/" + strings.ReplaceAll(encoded[1:], "-", "/")
	}
	return strings.ReplaceAll(encoded, "-", "/")
}

// BuildPathLookup inverts the config document's project table: for every
// real path p listed there, lookup[Encode(p)] = p. This is the only
// exact way back from an encoded directory name.
func BuildPathLookup(realPaths []string) map[string]string {
	lookup := make(map[string]string, len(realPaths))
	for _, p := range realPaths {
		lookup[Encode(p)] = p
	}
	return lookup
}

// Resolve maps an encoded directory name to a real path. Resolution
// order: config reverse lookup (exact), then the cwd recorded in an
// agent transcript inside the directory, then naive Decode. exact is
// false whenever either fallback was used, so callers can mark the
// project as an orphan with an approximate path.
func Resolve(encoded string, lookup map[string]string, projectDir string) (path string, exact bool) {
	if real, ok := lookup[encoded]; ok {
		return real, true
	}
	if cwd := cwdFromAgentFiles(projectDir); cwd != "" {
		return cwd, false
	}
	return Decode(encoded), false
}

// cwdFromAgentFiles recovers the real project path from the first line
// of an agent transcript: agent records carry a cwd field with the
// actual working directory. Returns "" when no agent file yields one.
func cwdFromAgentFiles(projectDir string) string {
	matches, err := filepath.Glob(filepath.Join(projectDir, "agent-*.jsonl"))
	if err != nil {
		return ""
	}
	for _, name := range matches {
		f, err := os.Open(name)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		if scanner.Scan() {
			if cwd := gjson.GetBytes(scanner.Bytes(), "cwd"); cwd.Type == gjson.String && cwd.Str != "" {
				f.Close()
				return cwd.Str
			}
		}
		f.Close()
	}
	return ""
}

// DisplayPath shortens a leading home-directory prefix to "~".
func DisplayPath(path, home string) string {
	if home != "" && strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

// ProjectName is the final path segment, or the whole path when it has
// no separator.
func ProjectName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// NormalizePathPrefix expands a leading "~" to the home directory so
// pathPrefix query filters can be written either way.
func NormalizePathPrefix(prefix, home string) string {
	if prefix == "~" {
		return home
	}
	if strings.HasPrefix(prefix, "~/") {
		return filepath.Join(home, prefix[2:])
	}
	return prefix
}
