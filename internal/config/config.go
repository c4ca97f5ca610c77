package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nextkit-labs/create-nextkit/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys.
const (
	KeyTemplateURL    = "template_url"
	KeyMinNodeVersion = "min_node_version"
	KeyRemoteCLI      = "remote_cli"
)

// DefaultMinNodeVersion is the lowest supported Node.js major version.
const DefaultMinNodeVersion = 14

// DefaultRemoteCLI is the hosted-service CLI used for remote provisioning.
const DefaultRemoteCLI = "supabase"

// Dir returns the path to the config directory (~/.nextkit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.nextkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyTemplateURL, branding.TemplateRepoURL())
	viper.SetDefault(KeyMinNodeVersion, DefaultMinNodeVersion)
	viper.SetDefault(KeyRemoteCLI, DefaultRemoteCLI)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// TemplateURL returns the template repository URL, checking (in order):
// 1. the override passed on the command line
// 2. NEXTKIT_TEMPLATE_URL
// 3. config key "template_url"
// 4. branding.TemplateRepoURL()
func TemplateURL(override string) string {
	if override != "" {
		return override
	}
	if v := viper.GetString(KeyTemplateURL); v != "" {
		return v
	}
	return branding.TemplateRepoURL()
}

// MinNodeVersion returns the minimum supported Node.js major version.
func MinNodeVersion() (int, error) {
	v := viper.GetInt(KeyMinNodeVersion)
	if v <= 0 {
		return 0, fmt.Errorf("config %s must be a positive integer, got %q", KeyMinNodeVersion, viper.GetString(KeyMinNodeVersion))
	}
	return v, nil
}

// RemoteCLI returns the name of the hosted-service CLI binary.
func RemoteCLI() string {
	if v := viper.GetString(KeyRemoteCLI); v != "" {
		return v
	}
	return DefaultRemoteCLI
}
