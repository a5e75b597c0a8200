// repo_gitignore.go marks catalogues local or shared by editing
// .caskfind/.gitignore. Other lines are left as they are.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localHeader = "# Local catalogues (not committed)"

func readLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(content), "\n"), nil
}

func ignoredSet(dir string) (map[string]bool, error) {
	lines, err := readLines(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(lines))
	for _, l := range lines {
		set[strings.TrimSpace(l)] = true
	}
	return set, nil
}

func resolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return DiscoverDir()
}

// IgnoreDB marks a catalogue local. dir is the .caskfind directory
// (discovered when empty).
func IgnoreDB(name, dir string) error {
	dir, err := resolveDir(dir)
	if err != nil {
		return err
	}
	gitignore := filepath.Join(dir, ".gitignore")
	file := DBFileName(name)

	lines, err := readLines(gitignore)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimSpace(l)
	}
	if slices.Contains(trimmed, file) {
		return nil
	}

	s := strings.Join(lines, "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	if !slices.Contains(trimmed, localHeader) {
		s += "\n" + localHeader + "\n"
	}
	s += file + "\n"
	return os.WriteFile(gitignore, []byte(s), 0644)
}

// UnignoreDB marks a catalogue shared. The local header is removed once no
// catalogue follows it.
func UnignoreDB(name, dir string) error {
	dir, err := resolveDir(dir)
	if err != nil {
		return err
	}
	gitignore := filepath.Join(dir, ".gitignore")
	file := DBFileName(name)

	lines, err := readLines(gitignore)
	if err != nil {
		return err
	}
	out := slices.DeleteFunc(lines, func(l string) bool {
		return strings.TrimSpace(l) == file
	})

	result := strings.Join(out, "\n")
	if i := strings.Index(result, localHeader); i != -1 {
		if !strings.Contains(result[i+len(localHeader):], ".db") {
			result = strings.TrimRight(result[:i], "\n") + "\n"
		}
	}
	return os.WriteFile(gitignore, []byte(result), 0644)
}

// IsIgnored reports whether a catalogue is local.
func IsIgnored(name, dir string) (bool, error) {
	dir, err := resolveDir(dir)
	if err != nil {
		return false, err
	}
	set, err := ignoredSet(dir)
	if err != nil {
		return false, err
	}
	return set[DBFileName(name)], nil
}
