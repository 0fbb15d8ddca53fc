package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ExpandPath resolves a path argument to the JSON files it names. A
// directory expands to the *.json files inside it; anything else is
// treated as a glob pattern. The result is sorted so runs are stable.
func ExpandPath(path string) ([]string, error) {
	pattern := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		pattern = filepath.Join(path, "*.json")
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// LoadRecords reads the record arrays from the given files and
// concatenates them. A file that cannot be read or parsed is skipped with
// a warning on stderr; one corrupt export should not sink the whole run.
func LoadRecords(files []string) []RawRecord {
	var records []RawRecord
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] failed to read %s: %v\n", f, err)
			continue
		}

		var batch []RawRecord
		if err := json.Unmarshal(data, &batch); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] failed to read %s: %v\n", f, err)
			continue
		}
		records = append(records, batch...)
	}
	return records
}
