// Package errors provides unified error handling for the parakit engine.
// It implements structured error types with machine-readable codes and
// cause chaining compatible with the standard library errors package.
package errors
