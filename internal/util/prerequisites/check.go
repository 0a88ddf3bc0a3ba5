// Package prerequisites verifies that the local tools a deployment shells out
// to are installed before any cloud resource is created.
package prerequisites

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"time"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// lookPath and versionOf are swapped in tests.
var (
	lookPath  = exec.LookPath
	versionOf = toolVersion
)

// DefaultTools returns the tools a deploy cannot run without.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "ansible-playbook",
			Required:    true,
			Description: "Runs the OpenVPN playbook against the new host",
			InstallURL:  "https://docs.ansible.com/ansible/latest/installation_guide/",
		},
	}
}

// OptionalTools returns tools that help with troubleshooting.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "ssh",
			Required:    false,
			Description: "Useful for logging in to the VPN host manually",
			InstallURL:  "https://www.openssh.com/portable.html",
		},
	}
}

// CheckResult is the outcome for one tool. Path and Version are empty when
// the tool was not found.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults holds one result per checked tool, in the order checked.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors reports whether a required tool is missing.
func (r *CheckResults) HasErrors() bool {
	return slices.ContainsFunc(r.Missing, func(t Tool) bool { return t.Required })
}

// Error lists the missing required tools with their install pages, or
// returns nil when nothing required is missing.
func (r *CheckResults) Error() error {
	var errs []error
	for _, tool := range r.Missing {
		if tool.Required {
			errs = append(errs, fmt.Errorf("%s is not installed, see %s", tool.Name, tool.InstallURL))
		}
	}
	return errors.Join(errs...)
}

// Check looks up every tool in PATH and asks the ones found for a version.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{Results: make([]CheckResult, 0, len(tools))}
	for _, tool := range tools {
		path, err := lookPath(tool.Name)
		if err != nil {
			results.Missing = append(results.Missing, tool)
			results.Results = append(results.Results, CheckResult{Tool: tool})
			continue
		}
		results.Results = append(results.Results, CheckResult{
			Tool:    tool,
			Found:   true,
			Path:    path,
			Version: versionOf(path),
		})
	}
	return results
}

// CheckDefault checks the required tools.
func CheckDefault() *CheckResults {
	return Check(DefaultTools())
}

// CheckAll checks required and optional tools.
func CheckAll() *CheckResults {
	return Check(append(DefaultTools(), OptionalTools()...))
}

// toolVersion returns the first line of `<path> --version`, or "" when the
// tool does not answer within two seconds.
func toolVersion(path string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// #nosec G204 - path comes from exec.LookPath on a fixed tool name
	output, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return ""
	}
	first, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(first)
}
