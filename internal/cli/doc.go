// Package cli defines the Cobra command for create-nextkit. The root command
// parses flags, wires the production collaborators (exec runner, OS
// filesystem, survey prompts) and hands control to internal/scaffold.
package cli
