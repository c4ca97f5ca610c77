// Package branding provides compile-time identity values for the CLI.
//
// Forks edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	TemplateRepoURL string `yaml:"template_repo_url"`
	DocsURL         string `yaml:"docs_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:         "create-nextkit",
			DisplayName:     "NextKit",
			Description:     "Scaffold a new NextKit application",
			HomeDir:         ".nextkit",
			EnvPrefix:       "NEXTKIT",
			TemplateRepoURL: "https://github.com/nextkit-labs/nextkit-template.git",
			DocsURL:         "https://nextkit.dev/docs",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-nextkit").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "NextKit").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".nextkit").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "NEXTKIT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// TemplateRepoURL returns the default git URL of the project template.
func TemplateRepoURL() string { load(); return defaults.TemplateRepoURL }

// DocsURL returns the documentation link printed after a successful run.
func DocsURL() string { load(); return defaults.DocsURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("template_url") → "NEXTKIT_TEMPLATE_URL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
