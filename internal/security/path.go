// Package security provides security utilities for the Chudnovsky calculator,
// including path sanitization to prevent directory traversal attacks.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// allowedOutputExtensions lists the file extensions cmd/chudnovsky is
// permitted to write pi-digit output to. The engine only ever produces
// plain decimal text, so anything else is almost certainly a mistyped
// flag rather than an intentional target.
var allowedOutputExtensions = map[string]bool{
	".txt": true,
	"":     true,
}

// SanitizePath sanitizes file paths to prevent directory traversal attacks.
// It ensures the path is within the current working directory and removes
// any directory traversal attempts (..).
//
// Security features:
//   - Removes ".." components
//   - Validates path stays within working directory
//   - Prevents writing to system directories like /etc, /root
//
// Parameters:
//   - path: The file path to sanitize
//
// Returns:
//   - string: The cleaned, safe path
//   - error: Error if path is invalid or attempts directory traversal
func SanitizePath(path string) (string, error) {
	// Resolve "." and interior ".." elements lexically
	cleaned := filepath.Clean(path)

	// Check if the cleaned path still contains ".." (directory traversal)
	// filepath.Clean keeps leading ".." elements, which would escape the
	// working directory
	if strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("path contains directory traversal: %s", path)
	}

	// Check if path resolves outside the current working directory
	// Get absolute path to detect traversal
	absPath, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		// If we can't get CWD, just use cleaned path (less secure but functional)
		return cleaned, nil
	}

	// Check if the absolute path is outside the current directory
	// This prevents writing to /etc, /root, etc.
	// However, we allow paths that are subdirectories of the current directory
	relPath, err := filepath.Rel(cwd, absPath)
	if err != nil {
		// If we can't compute relative path, check if absPath starts with cwd
		if !strings.HasPrefix(absPath, cwd) {
			return "", fmt.Errorf("path outside working directory: %s", path)
		}
		// If it's a subdirectory, allow it
		return cleaned, nil
	}

	// If relative path starts with "..", it's outside the current directory
	if strings.HasPrefix(relPath, "..") {
		return "", fmt.Errorf("path outside working directory: %s", path)
	}

	// Path is within current directory or a subdirectory - safe
	return cleaned, nil
}

// SanitizeOutputPath applies SanitizePath and additionally rejects
// extensions cmd/chudnovsky has no business writing to (e.g. ".go",
// ".sh"), since an output path comes from a CLI flag and a typo there
// should fail loudly rather than silently overwrite an unrelated file.
func SanitizeOutputPath(path string) (string, error) {
	cleaned, err := SanitizePath(path)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(cleaned)
	if !allowedOutputExtensions[ext] {
		return "", fmt.Errorf("output path has unsupported extension %q (want .txt): %s", ext, path)
	}

	return cleaned, nil
}
