// Package deps resolves and preflights the external binaries the backend
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"rvj/internal/fileutil"
)

// Requirement defines an external dependency the backend relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Resolve turns a configured binary value into an invokable path. Bare
// command names are looked up on PATH; anything containing a separator is
// treated as an explicit file path and must exist.
func Resolve(binary string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return "", fmt.Errorf("binary not configured")
	}
	if strings.ContainsAny(binary, `/\`) {
		if !fileutil.IsFile(binary) {
			return "", fmt.Errorf("binary %q not found", binary)
		}
		return binary, nil
	}
	resolved, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("binary %q not found on PATH", binary)
	}
	return resolved, nil
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{
			Name:        req.Name,
			Command:     strings.TrimSpace(req.Command),
			Description: strings.TrimSpace(req.Description),
		}
		if _, err := Resolve(status.Command); err != nil {
			status.Detail = err.Error()
		} else {
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}
