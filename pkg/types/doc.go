// Package types defines the project configuration model, the context
// base-type taxonomy, the uniform operation response envelope, and standard
// error values for the shared-project-context storage system.
package types
