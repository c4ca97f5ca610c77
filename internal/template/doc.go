// Package template checks the package.json of a freshly cloned project
// template against an embedded JSON schema and personalizes it for the new
// project.
package template
