// Package deps reports on external binaries a build shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Status reports whether one external binary is usable.
type Status struct {
	Name string
	// Command is the binary as configured.
	Command string
	// Path is where Command resolved; empty when it did not.
	Path      string
	Available bool
	Detail    string
}

// LookupBinary resolves command on PATH (or as a path) for the dependency
// called name.
func LookupBinary(name, command string) Status {
	status := Status{Name: name, Command: strings.TrimSpace(command)}
	if status.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(status.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		return status
	}
	status.Path = path
	status.Available = true
	return status
}
