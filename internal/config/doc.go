// Package config defines the format-agnostic model of the deployment
// descriptor, plus the Loader and Converter interfaces a format-specific
// implementation (currently HCL) must satisfy.
//
// The model is produced once at startup, validated against the UI registry,
// and then treated as read-only.
package config
