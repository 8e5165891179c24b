// Package errors provides the classified error primitives shared across blogsmith.
//
// Infrastructure failures (configuration, filesystem, runtime) are built with the
// fluent ErrorBuilder. Content failures keep their own typed errors in the package
// that detects them and expose a Category method so the CLI adapter can route
// them to an exit code without knowing their concrete types.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "read post").
//		WithContext("path", path).
//		Build()
package errors
