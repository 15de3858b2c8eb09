package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBuildPlan parses "name<TAB>quantity" lines into total quantities per name.
// Escaped "\n" sequences count as line breaks and blank lines are skipped.
func ParseBuildPlan(raw string) (map[string]int, error) {
	totals := make(map[string]int)
	cleaned := strings.ReplaceAll(raw, `\n`, "\n")

	for i, rawLine := range strings.Split(cleaned, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		sep := strings.LastIndex(line, "\t")
		if sep < 0 {
			return nil, fmt.Errorf("build plan line %d: missing tab separator in %q", i+1, line)
		}

		name := strings.TrimSpace(line[:sep])
		quantity, err := strconv.Atoi(strings.TrimSpace(line[sep+1:]))
		if err != nil {
			return nil, fmt.Errorf("build plan line %d: invalid quantity: %w", i+1, err)
		}

		totals[name] += quantity
	}

	return totals, nil
}
