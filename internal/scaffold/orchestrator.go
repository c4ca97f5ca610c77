package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nextkit-labs/create-nextkit/internal/branding"
	"github.com/nextkit-labs/create-nextkit/internal/git"
	"github.com/nextkit-labs/create-nextkit/internal/naming"
	"github.com/nextkit-labs/create-nextkit/internal/pkgmgr"
	"github.com/nextkit-labs/create-nextkit/internal/remote"
	"github.com/nextkit-labs/create-nextkit/internal/runtime"
	"github.com/nextkit-labs/create-nextkit/internal/session"
	"github.com/nextkit-labs/create-nextkit/internal/shell"
	"github.com/nextkit-labs/create-nextkit/internal/template"
	"github.com/nextkit-labs/create-nextkit/internal/ui"
	"github.com/spf13/afero"
)

// VersionProbe reports the installed Node.js version.
type VersionProbe interface {
	Version(ctx context.Context) (string, error)
}

// Questioner collects the user's choices.
type Questioner interface {
	PackageManager(ctx context.Context) (session.PackageManager, error)
	CSS(ctx context.Context) (session.CSS, error)
	Backends(ctx context.Context) ([]session.Backend, error)
	CreateRemoteProject(ctx context.Context) (bool, error)
	RemoteProjectName(ctx context.Context) (string, error)
}

// Options are the inputs of one run.
type Options struct {
	Args         []string // positional arguments; exactly one project name is expected
	WorkDir      string   // directory the project path is resolved against
	TemplateURL  string
	MinNodeMajor int
	RemoteCLI    string // hosted-service CLI binary, e.g. "supabase"
}

// Orchestrator runs the scaffolding workflow against its collaborators.
type Orchestrator struct {
	Runner    shell.Runner
	Questions Questioner
	FS        afero.Fs
	Node      VersionProbe
	Reporter  *ui.Reporter
	Options   Options
}

// Run executes the whole workflow and returns the final session. Preflight
// failures leave the filesystem untouched; later failures are rolled back.
func (o *Orchestrator) Run(ctx context.Context) (session.Session, error) {
	s := session.Session{TemplateURL: o.Options.TemplateURL}

	for _, step := range o.PreflightSteps() {
		next, err := step.Run(ctx, s)
		if err != nil {
			return s, err
		}
		s = next
	}

	tx := &Transaction{
		FS:       o.FS,
		Root:     s.CreatedRoot,
		KeepRoot: s.CurrentDir,
		Preserve: s.PreExisting,
	}
	s, err := tx.Run(ctx, s, o.ProjectSteps())
	if err != nil {
		if tx.RollbackErr == nil {
			if tx.KeepRoot {
				o.Reporter.Info("Removed the files this run created in %s", s.ResolvedPath)
			} else {
				o.Reporter.Info("Removed partially created project at %s", s.ResolvedPath)
			}
		}
		return s, err
	}

	o.finish(s)
	return s, nil
}

// PreflightSteps returns the side-effect-free checks, in order.
func (o *Orchestrator) PreflightSteps() []Step {
	return []Step{
		{Name: "check environment", Run: o.checkEnvironment},
		{Name: "validate name", Run: o.validateName},
		{Name: "resolve path", Run: o.resolvePath},
		{Name: "check path", Run: o.checkPath},
	}
}

// ProjectSteps returns the side-effecting steps covered by the transaction, in order.
func (o *Orchestrator) ProjectSteps() []Step {
	return []Step{
		{Name: "clone template", Run: o.acquireTemplate},
		{Name: "configure project", Run: o.configure},
		{Name: "install dependencies", Run: o.install},
		{Name: "run generators", Run: o.generate},
		{Name: "provision remote project", Run: o.provisionRemote},
	}
}

func (o *Orchestrator) checkEnvironment(ctx context.Context, s session.Session) (session.Session, error) {
	version, err := o.Node.Version(ctx)
	if err != nil {
		return s, newError(KindUnsupportedEnvironment, "could not determine the Node.js version", err)
	}
	if _, err := runtime.CheckVersion(version, o.Options.MinNodeMajor); err != nil {
		var unsupported *runtime.UnsupportedError
		if errors.As(err, &unsupported) {
			return s, newError(KindUnsupportedEnvironment, unsupported.Error(), nil,
				"please upgrade Node.js: https://nodejs.org/")
		}
		return s, newError(KindUnsupportedEnvironment, "unrecognized Node.js version", err)
	}
	return s, nil
}

func (o *Orchestrator) validateName(_ context.Context, s session.Session) (session.Session, error) {
	switch len(o.Options.Args) {
	case 0:
		return s, newError(KindMissingArgument, "missing project name", nil,
			fmt.Sprintf("usage: %s <project-name>", branding.CLIName()),
			fmt.Sprintf("use %q to scaffold into the current directory", naming.CurrentDir))
	case 1:
	default:
		return s, newError(KindMissingArgument,
			fmt.Sprintf("expected exactly one project name, got %d arguments", len(o.Options.Args)), nil)
	}

	name := o.Options.Args[0]
	s.RequestedName = name
	if name == naming.CurrentDir {
		s.CurrentDir = true
		return s, nil
	}

	result := naming.Validate(name)
	if !result.ValidForNewPackages {
		details := append(append([]string{}, result.Errors...), result.Warnings...)
		return s, newError(KindInvalidName,
			fmt.Sprintf("cannot create a project named %q because of npm naming restrictions", name), nil,
			details...)
	}
	return s, nil
}

func (o *Orchestrator) resolvePath(_ context.Context, s session.Session) (session.Session, error) {
	path, err := filepath.Abs(filepath.Join(o.Options.WorkDir, s.RequestedName))
	if err != nil {
		return s, fmt.Errorf("resolving project path: %w", err)
	}
	s.ResolvedPath = path
	return s, nil
}

func (o *Orchestrator) checkPath(_ context.Context, s session.Session) (session.Session, error) {
	if s.CurrentDir {
		entries, err := afero.ReadDir(o.FS, s.ResolvedPath)
		if err != nil {
			return s, fmt.Errorf("reading %s: %w", s.ResolvedPath, err)
		}
		s.PreExisting = make([]string, 0, len(entries))
		for _, e := range entries {
			s.PreExisting = append(s.PreExisting, e.Name())
		}
		s.CreatedRoot = s.ResolvedPath
		return s, nil
	}

	exists, err := lexists(o.FS, s.ResolvedPath)
	if err != nil {
		return s, fmt.Errorf("checking %s: %w", s.ResolvedPath, err)
	}
	if exists {
		return s, newError(KindPathExists,
			fmt.Sprintf("a file or directory named %q already exists at %s", s.RequestedName, s.ResolvedPath), nil,
			"choose a different project name or remove the existing directory")
	}

	// Scoped names like @scope/app make git create missing parents too.
	s.CreatedRoot = s.ResolvedPath
	for {
		parent := filepath.Dir(s.CreatedRoot)
		if parent == s.CreatedRoot {
			break
		}
		exists, err := lexists(o.FS, parent)
		if err != nil {
			return s, fmt.Errorf("checking %s: %w", parent, err)
		}
		if exists {
			break
		}
		s.CreatedRoot = parent
	}
	return s, nil
}

// lexists reports whether path exists without following a final symlink,
// so a dangling link still counts as taken.
func lexists(fs afero.Fs, path string) (bool, error) {
	var err error
	if l, ok := fs.(afero.Lstater); ok {
		_, _, err = l.LstatIfPossible(path)
	} else {
		_, err = fs.Stat(path)
	}
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (o *Orchestrator) acquireTemplate(ctx context.Context, s session.Session) (session.Session, error) {
	o.Reporter.Step("Cloning template into %s", s.ResolvedPath)
	if err := git.Clone(ctx, o.Runner, s.TemplateURL, s.ResolvedPath); err != nil {
		return s, err
	}

	m, err := template.Load(o.FS, s.ResolvedPath)
	if err != nil {
		return s, err
	}
	s.TemplateScripts = m.Scripts

	if !s.CurrentDir {
		if err := template.SetName(o.FS, s.ResolvedPath, s.RequestedName); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (o *Orchestrator) configure(ctx context.Context, s session.Session) (session.Session, error) {
	pm, err := o.Questions.PackageManager(ctx)
	if err != nil {
		return s, fmt.Errorf("choosing package manager: %w", err)
	}
	css, err := o.Questions.CSS(ctx)
	if err != nil {
		return s, fmt.Errorf("choosing CSS framework: %w", err)
	}
	backends, err := o.Questions.Backends(ctx)
	if err != nil {
		return s, fmt.Errorf("choosing backend services: %w", err)
	}
	s.PackageManager = pm
	s.CSS = css
	s.Backends = backends

	m := &template.Manifest{Scripts: s.TemplateScripts}
	if missing := m.MissingScripts(s.GeneratorScripts()); len(missing) > 0 {
		return s, fmt.Errorf("template does not define script(s) %s required by the selected backend services",
			strings.Join(missing, ", "))
	}
	return s, nil
}

func (o *Orchestrator) install(ctx context.Context, s session.Session) (session.Session, error) {
	c := pkgmgr.Install(s.PackageManager, s.Dependencies(), s.ResolvedPath)
	o.Reporter.Step("Installing dependencies (%s)", c)
	if err := o.Runner.Run(ctx, c); err != nil {
		return s, fmt.Errorf("installing dependencies: %w", err)
	}
	return s, nil
}

func (o *Orchestrator) generate(ctx context.Context, s session.Session) (session.Session, error) {
	for _, script := range s.GeneratorScripts() {
		c := pkgmgr.RunScript(s.PackageManager, script, s.ResolvedPath)
		o.Reporter.Step("Running %s", c)
		if err := o.Runner.Run(ctx, c); err != nil {
			return s, fmt.Errorf("running %s: %w", script, err)
		}
	}
	return s, nil
}

func (o *Orchestrator) provisionRemote(ctx context.Context, s session.Session) (session.Session, error) {
	create, err := o.Questions.CreateRemoteProject(ctx)
	if err != nil {
		return s, fmt.Errorf("asking about remote project: %w", err)
	}
	s.CreateRemoteProject = create
	if !create {
		return s, nil
	}

	p := &remote.Provisioner{Runner: o.Runner, CLI: o.Options.RemoteCLI, Dir: s.ResolvedPath}
	o.Reporter.Step("Signing in with %s", p.CLI)
	if err := p.Login(ctx); err != nil {
		return s, err
	}
	if err := p.ListProjects(ctx); err != nil {
		return s, err
	}
	name, err := o.Questions.RemoteProjectName(ctx)
	if err != nil {
		return s, fmt.Errorf("asking for remote project name: %w", err)
	}
	o.Reporter.Step("Creating %s project %s", p.CLI, name)
	if err := p.CreateProject(ctx, name); err != nil {
		return s, err
	}
	s.RemoteProjectName = strings.TrimSpace(name)
	return s, nil
}

// finish detaches the project from the template history and prints the
// success banner. A failure here does not roll back a working project.
func (o *Orchestrator) finish(s session.Session) {
	if err := git.RemoveMetadata(o.FS, s.ResolvedPath); err != nil {
		o.Reporter.Warn("%v; remove it manually to detach from the template history", err)
	}

	var lines []string
	if !s.CurrentDir {
		lines = append(lines, "cd "+s.RequestedName)
	}
	lines = append(lines, string(s.PackageManager)+" run dev", "", "Docs: "+branding.DocsURL())
	o.Reporter.Success(fmt.Sprintf("%s project created at %s", branding.DisplayName(), s.ResolvedPath), lines...)
}
