package runtime

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/nextkit-labs/create-nextkit/internal/branding"
	"github.com/nextkit-labs/create-nextkit/internal/shell"
)

// NodeProbe reports the installed Node.js version.
type NodeProbe struct {
	Runner shell.Runner
}

// Version returns the Node.js version string (e.g., "v18.17.1"). The
// NEXTKIT_NODE_VERSION environment variable takes precedence over running
// `node --version`.
func (p *NodeProbe) Version(ctx context.Context) (string, error) {
	if v := os.Getenv(branding.EnvVar("NODE_VERSION")); v != "" {
		return v, nil
	}
	out, err := p.Runner.Output(ctx, shell.Command{Name: "node", Args: []string{"--version"}})
	if err != nil {
		return "", fmt.Errorf("node runtime requires Node.js: %w", err)
	}
	return out, nil
}

// UnsupportedError reports a Node.js version below the required major.
type UnsupportedError struct {
	Version  string
	MinMajor int
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("Node.js %s is not supported; version %d or higher is required", e.Version, e.MinMajor)
}

// CheckVersion parses version and returns an *UnsupportedError if its major
// component is below minMajor.
func CheckVersion(version string, minMajor int) (*semver.Version, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return nil, err
	}
	if v.Major() < uint64(minMajor) {
		return v, &UnsupportedError{Version: v.Original(), MinMajor: minMajor}
	}
	return v, nil
}

// ParseVersion strips a leading "v" and parses the version string.
func ParseVersion(version string) (*semver.Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(version), "v")
	v, err := semver.NewVersion(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parsing Node.js version %q: %w", version, err)
	}
	return v, nil
}
