// Package util provides generic utility functions for parakit packages.
//
// It includes numeric clamping, string truncation for log labels, and
// small slice/pointer helpers.
package util
