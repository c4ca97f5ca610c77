// Package pkgmgr builds the command lines for the supported Node.js package
// managers.
package pkgmgr

import (
	"github.com/nextkit-labs/create-nextkit/internal/session"
	"github.com/nextkit-labs/create-nextkit/internal/shell"
)

// addVerbs maps each package manager to the verb that adds named packages.
var addVerbs = map[session.PackageManager]string{
	session.NPM:  "install",
	session.Yarn: "add",
	session.PNPM: "add",
}

// AddVerb returns the verb used to add named packages with pm.
func AddVerb(pm session.PackageManager) string {
	if v, ok := addVerbs[pm]; ok {
		return v
	}
	return "add"
}

// Install returns the command that installs deps into dir. With no deps it
// runs a bare install of the project's declared dependencies.
func Install(pm session.PackageManager, deps []string, dir string) shell.Command {
	if len(deps) == 0 {
		return shell.Command{Name: string(pm), Args: []string{"install"}, Dir: dir}
	}
	args := append([]string{AddVerb(pm)}, deps...)
	return shell.Command{Name: string(pm), Args: args, Dir: dir}
}

// RunScript returns the command that runs a package.json script in dir.
func RunScript(pm session.PackageManager, script, dir string) shell.Command {
	return shell.Command{Name: string(pm), Args: []string{"run", script}, Dir: dir}
}
