// Package registry provides the central "glue" between the deployment
// descriptor and the compiled Go code.
//
// The Registry stores mappings between the UI names used in descriptor `ui`
// blocks and the Go factories that construct those UIs. During application
// startup the registry is populated by modules and then validated against
// the loaded descriptor, so that a descriptor naming an unknown UI fails
// before the server accepts a single request.
package registry
