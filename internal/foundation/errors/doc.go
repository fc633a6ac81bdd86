// Package errors provides the classified error primitives used across staticrender.
//
// Every failure the build engine surfaces is a ClassifiedError carrying a category
// (config, store, source, template, output, markup, ...), a severity and optional
// structured context such as the page identifier. Fatal categories abort a build;
// the per-page categories are reported and the build continues.
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategorySource, "cannot read page source").
//		WithContext("page", id).
//		Build()
package errors
