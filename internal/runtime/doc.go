// Package runtime probes the Node.js runtime that the scaffolded project and
// its package managers depend on, and gates execution on a minimum major
// version.
package runtime
