//go:build !cgo

package torcs

import (
	"fmt"
	"os"
)

// ModulePath falls back to the executable path when cgo is off. Such a build
// cannot be loaded by the host, so this only serves tools and tests.
func ModulePath() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("module path lookup failed: %w", err)
	}
	return p, nil
}
