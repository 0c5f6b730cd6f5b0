package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement describes an external binary gifclip shells out to.
type Requirement struct {
	Name    string
	Command string
}

// Status reports the availability of a requirement.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// Check evaluates the provided requirements via PATH lookup. Commands given
// as explicit paths are accepted as-is by exec.LookPath.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{Requirement: req}
		cmd := strings.TrimSpace(req.Command)
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Missing names the unavailable requirements, with detail.
func Missing(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available {
			missing = append(missing,
				fmt.Sprintf("%s (%s)", status.Name, status.Detail))
		}
	}
	return missing
}
