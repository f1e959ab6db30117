// Package app encapsulates the application's dependencies, configuration,
// and lifecycle: logger setup, descriptor loading, registry population and
// validation at construction time, then the HTTP and push servers at run
// time.
package app
