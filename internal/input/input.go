// Package input gathers audit targets from arguments or piped stdin and
// normalizes the list before it reaches the orchestrator.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mailposture/mailposture/internal/apperr"
)

// Read collects one target per line from r, skipping blank lines and
// lines starting with '#'.
func Read(r io.Reader) ([]string, error) {
	var targets []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading input: %w", apperr.ErrInvalidInput, err)
	}
	return targets, nil
}

// Dedupe removes case-insensitive duplicates while preserving the first
// occurrence's position and spelling.
func Dedupe(targets []string) []string {
	seen := make(map[string]struct{}, len(targets))
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(t))
	}
	return out
}
