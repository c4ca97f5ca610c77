// Package naming validates project names against the npm package-name rules,
// since the name ends up in the scaffolded package.json.
package naming

import (
	"regexp"
	"strings"
)

// CurrentDir is the project-name sentinel that scaffolds into the working directory.
const CurrentDir = "."

const maxLength = 214

var (
	scopedPattern = regexp.MustCompile(`^(?:@([^/]+?)[/])?([^/]+?)$`)
	specialChars  = regexp.MustCompile(`[~'!()*]`)

	reservedNames = []string{"node_modules", "favicon.ico"}

	// Node.js core modules; a package may not shadow them.
	coreModules = []string{
		"assert", "async_hooks", "buffer", "child_process", "cluster", "console",
		"constants", "crypto", "dgram", "diagnostics_channel", "dns", "domain",
		"events", "fs", "http", "http2", "https", "inspector", "module", "net",
		"os", "path", "perf_hooks", "process", "punycode", "querystring",
		"readline", "repl", "stream", "string_decoder", "sys", "timers", "tls",
		"trace_events", "tty", "url", "util", "v8", "vm", "wasi",
		"worker_threads", "zlib",
	}
)

// Result holds the outcome of validating a name.
type Result struct {
	ValidForNewPackages bool
	ValidForOldPackages bool
	Errors              []string
	Warnings            []string
}

// Validate checks name against the npm package-name rules. Errors make a
// name invalid everywhere; warnings only make it invalid for new packages.
func Validate(name string) Result {
	var errs, warnings []string

	if name == "" {
		errs = append(errs, "name length must be greater than zero")
	}
	if strings.HasPrefix(name, ".") {
		errs = append(errs, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		errs = append(errs, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		errs = append(errs, "name cannot contain leading or trailing spaces")
	}

	lower := strings.ToLower(name)
	for _, reserved := range reservedNames {
		if lower == reserved {
			errs = append(errs, reserved+" is a blacklisted name")
		}
	}
	for _, core := range coreModules {
		if lower == core {
			warnings = append(warnings, core+" is a core module name")
		}
	}

	if len(name) > maxLength {
		warnings = append(warnings, "name can no longer contain more than 214 characters")
	}
	if lower != name {
		warnings = append(warnings, "name can no longer contain capital letters")
	}
	segments := strings.Split(name, "/")
	if specialChars.MatchString(segments[len(segments)-1]) {
		warnings = append(warnings, `name can no longer contain special characters ("~'!()*")`)
	}

	if !urlSafe(name) && !validScoped(name) {
		errs = append(errs, "name can only contain URL-friendly characters")
	}

	return Result{
		ValidForNewPackages: len(errs) == 0 && len(warnings) == 0,
		ValidForOldPackages: len(errs) == 0,
		Errors:              errs,
		Warnings:            warnings,
	}
}

// validScoped reports whether name is "@scope/pkg" with URL-safe parts.
func validScoped(name string) bool {
	m := scopedPattern.FindStringSubmatch(name)
	if m == nil || m[1] == "" {
		return false
	}
	return urlSafe(m[1]) && urlSafe(m[2])
}

// urlSafe reports whether s is left unchanged by URI component encoding.
func urlSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case strings.IndexByte("-_.!~*'()", c) >= 0:
		default:
			return false
		}
	}
	return true
}
