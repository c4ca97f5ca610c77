// Package config manages user-level settings stored at ~/.nextkit/config.yaml.
// Values can be overridden by NEXTKIT_* environment variables; the template
// repository URL can additionally be overridden per run with a flag.
package config
