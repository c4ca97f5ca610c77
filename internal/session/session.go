// Package session holds the state of one scaffolding run and the static
// tables that map user choices to packages and generator scripts.
package session

import (
	"fmt"
	"strings"
)

// PackageManager identifies the Node.js package manager used for the project.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	Yarn PackageManager = "yarn"
	PNPM PackageManager = "pnpm"
)

// PackageManagers lists the supported package managers in prompt order.
var PackageManagers = []PackageManager{NPM, Yarn, PNPM}

// CSS identifies the styling framework added to the project.
type CSS string

const (
	CSSNone     CSS = "none"
	CSSChakraUI CSS = "chakraui"
)

// CSSChoices lists the selectable styling options in prompt order.
var CSSChoices = []CSS{CSSNone, CSSChakraUI}

// Backend identifies an optional backend service.
type Backend string

const (
	Prisma   Backend = "prisma"
	Supabase Backend = "supabase"
)

// Backends lists the selectable backend services in prompt order.
var Backends = []Backend{Prisma, Supabase}

var (
	cssPackages = map[CSS][]string{
		CSSChakraUI: {"@chakra-ui/react", "@emotion/react", "@emotion/styled", "framer-motion"},
	}
	backendPackages = map[Backend][]string{
		Prisma:   {"prisma", "@prisma/client"},
		Supabase: {"@supabase/supabase-js"},
	}
	backendScripts = map[Backend]string{
		Prisma:   "init:prisma",
		Supabase: "init:supabase",
	}
)

// Session is the state of one scaffolding run. Steps receive a Session and
// return the updated value; nothing else mutates it.
type Session struct {
	RequestedName string
	ResolvedPath  string // absolute
	CurrentDir    bool   // RequestedName was "."
	TemplateURL   string

	// PreExisting holds entry names found in ResolvedPath before the run
	// (current-directory mode only); rollback leaves them in place.
	PreExisting []string

	// CreatedRoot is the topmost directory the run creates: ResolvedPath,
	// or a missing ancestor of it for scoped names. Rollback removes it.
	CreatedRoot string

	// TemplateScripts holds the package.json scripts the cloned template defines.
	TemplateScripts map[string]string

	PackageManager      PackageManager
	CSS                 CSS
	Backends            []Backend
	CreateRemoteProject bool
	RemoteProjectName   string
}

// Dependencies returns the packages to add for the chosen CSS framework and
// backend services, in selection order. "none" and unknown choices add nothing.
func (s Session) Dependencies() []string {
	var deps []string
	deps = append(deps, cssPackages[s.CSS]...)
	for _, b := range s.Backends {
		deps = append(deps, backendPackages[b]...)
	}
	return deps
}

// GeneratorScripts returns the package scripts to run for the chosen backends.
func (s Session) GeneratorScripts() []string {
	var scripts []string
	for _, b := range s.Backends {
		if script, ok := backendScripts[b]; ok {
			scripts = append(scripts, script)
		}
	}
	return scripts
}

// ParsePackageManager converts a user-supplied identifier to a PackageManager.
func ParsePackageManager(v string) (PackageManager, error) {
	for _, pm := range PackageManagers {
		if string(pm) == strings.ToLower(v) {
			return pm, nil
		}
	}
	return "", fmt.Errorf("unknown package manager %q: must be one of %s", v, joinValues(PackageManagers))
}

// ParseCSS converts a user-supplied identifier to a CSS choice.
func ParseCSS(v string) (CSS, error) {
	for _, c := range CSSChoices {
		if string(c) == strings.ToLower(v) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown CSS option %q: must be one of %s", v, joinValues(CSSChoices))
}

// ParseBackend converts a user-supplied identifier to a Backend.
func ParseBackend(v string) (Backend, error) {
	for _, b := range Backends {
		if string(b) == strings.ToLower(v) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown backend service %q: must be one of %s", v, joinValues(Backends))
}

// ParseBackends converts identifiers to Backends, dropping duplicates.
func ParseBackends(values []string) ([]Backend, error) {
	var out []Backend
	seen := make(map[Backend]bool)
	for _, v := range values {
		b, err := ParseBackend(v)
		if err != nil {
			return nil, err
		}
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out, nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
