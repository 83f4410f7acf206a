package deploy

import (
	"fmt"
	"os"
)

// FindHTML returns the first candidate that exists as a regular file.
func FindHTML(candidates []string) (string, error) {
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: looked in %v", ErrHTMLNotFound, candidates)
}
