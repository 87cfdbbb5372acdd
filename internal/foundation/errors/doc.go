// Package errors provides the classified error primitives used across docsite.
//
// A ClassifiedError carries a category (config, compat, render, ...), a severity and
// structured context. Errors are built with a fluent builder:
//
//	err := errors.NewError(errors.CategoryCompat, "patch target has unexpected shape").
//		Fatal().
//		WithContext("target", "page.render").
//		WithCause(originalErr).
//		Build()
//
// The CLI adapter maps categories onto process exit codes.
package errors
