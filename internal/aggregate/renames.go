package aggregate

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadRenames parses the out-of-band rename directive format: one
// key<TAB>value mapping per line, no header, no escaping.
func ReadRenames(r io.Reader) (map[string]string, error) {
	renames := map[string]string{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		src, dest, ok := strings.Cut(text, "\t")
		src = strings.TrimSpace(src)
		dest = strings.TrimSpace(dest)
		if !ok || src == "" || dest == "" || strings.Contains(dest, "\t") {
			return nil, fmt.Errorf("line %d: invalid rename mapping %q", line, text)
		}
		renames[src] = dest
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read renames: %w", err)
	}
	return renames, nil
}

// ReplaceExt swaps the extension of a file path. Paths without an
// extension are returned unchanged.
func ReplaceExt(path, ext string) string {
	old := filepath.Ext(path)
	if old == "" {
		return path
	}
	return strings.TrimSuffix(path, old) + "." + ext
}

// OutputNames resolves the output page name for every file: the rename
// entry when one exists, else the base name with the extension swapped.
// Two files resolving to the same output name is a fatal configuration
// error reporting both.
func OutputNames(files []string, renames map[string]string, ext string) (map[string]string, error) {
	names := make(map[string]string, len(files))
	owners := map[string]string{}
	for _, file := range files {
		name, ok := renames[file]
		if !ok {
			name = ReplaceExt(filepath.Base(file), ext)
		}
		if first, taken := owners[name]; taken {
			return nil, &CollisionError{Output: name, First: first, Second: file}
		}
		owners[name] = file
		names[file] = name
	}
	return names, nil
}
