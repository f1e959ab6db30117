// Package hcl is the HCL implementation of the config.Loader and
// config.Converter interfaces. It parses deployment descriptor files,
// translates them into the format-agnostic config model, and decodes
// descriptor params into the Go structs declared by UI factories.
package hcl
