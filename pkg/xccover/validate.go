package xccover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// controlChars may smuggle extra arguments or log lines into the tool invocation.
const controlChars = "\x00\r\n"

// ValidateBundlePath sanitizes the result bundle input and returns its absolute, canonical path.
// The raw value is rejected before any filesystem access when it contains NUL, CR or LF.
func ValidateBundlePath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: result bundle path is empty", ErrInvalidInput)
	}
	if strings.ContainsAny(trimmed, controlChars) {
		return "", fmt.Errorf("%w: result bundle contains control characters", ErrInvalidInput)
	}

	absPath, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %s", ErrInvalidInput, trimmed, err)
	}

	if _, err := os.Stat(absPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrPathNotFound, absPath)
		}
		return "", fmt.Errorf("stat result bundle %s: %w", absPath, err)
	}

	canonical, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("resolve symlinks of %s: %w", absPath, err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return "", fmt.Errorf("stat result bundle %s: %w", canonical, err)
	}
	if !info.Mode().IsRegular() && !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrInvalidPathType, canonical)
	}

	return canonical, nil
}
