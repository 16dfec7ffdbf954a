// Package menu holds the restaurant menu as opaque configuration data and
// builds the system prompt handed to the chat model. One schema, multiple
// data instances: deployments swap the menu via MENU_FILE without a rebuild.
package menu

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed menu.txt
var embedded string

// Default returns the menu compiled into the binary.
func Default() string {
	return embedded
}

// Load returns the active menu text, preferring the file at path when set.
func Load(path string) (string, error) {
	if path == "" {
		return embedded, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading menu file %s: %w", path, err)
	}
	return string(data), nil
}
