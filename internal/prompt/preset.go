package prompt

import (
	"fmt"
	"os"

	"github.com/nextkit-labs/create-nextkit/internal/remote"
	"github.com/nextkit-labs/create-nextkit/internal/session"
	toml "github.com/pelletier/go-toml/v2"
)

// Preset holds pre-recorded answers loaded from a TOML file. Unset fields
// are asked interactively.
//
//	package_manager = "pnpm"
//	css = "chakraui"
//	backends = ["prisma"]
//
//	[remote]
//	create = true
//	project_name = "my-app-db"
type Preset struct {
	PackageManager string        `toml:"package_manager"`
	CSS            string        `toml:"css"`
	Backends       *[]string     `toml:"backends"`
	Remote         *RemotePreset `toml:"remote"`
}

// RemotePreset answers the hosted-project questions.
type RemotePreset struct {
	Create      bool   `toml:"create"`
	ProjectName string `toml:"project_name"`
}

// LoadPreset reads and validates a preset file.
func LoadPreset(path string) (*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening preset: %w", err)
	}
	defer f.Close()

	var p Preset
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&p); err != nil {
		return nil, fmt.Errorf("parsing preset %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return &p, nil
}

// Validate checks every answer the preset sets.
func (p *Preset) Validate() error {
	if p.PackageManager != "" {
		if _, err := session.ParsePackageManager(p.PackageManager); err != nil {
			return err
		}
	}
	if p.CSS != "" {
		if _, err := session.ParseCSS(p.CSS); err != nil {
			return err
		}
	}
	if p.Backends != nil {
		if _, err := session.ParseBackends(*p.Backends); err != nil {
			return err
		}
	}
	if p.Remote != nil && p.Remote.Create && p.Remote.ProjectName != "" {
		if err := remote.ValidateProjectName(p.Remote.ProjectName); err != nil {
			return fmt.Errorf("remote.project_name: %w", err)
		}
	}
	return nil
}
