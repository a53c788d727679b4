// Package validation provides input validation utilities for parakit.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// what the engine configuration uses.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    Workers        int `validate:"gte=0"`
//	    OutputCapacity int `validate:"gte=1"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Min("workers", cfg.Workers, 0)
//	err := v.Validate()
package validation
