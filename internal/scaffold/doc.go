// Package scaffold drives a project from command-line input to a ready
// directory. A run is an ordered list of steps that thread a session.Session
// through them: side-effect-free preflight checks first, then the
// side-effecting steps inside a single Transaction that removes everything
// it created if any of them fails.
package scaffold
