// Package provider implements the UI provider: the per-session component
// that maps normalized request paths to registered UIs and constructs UI
// instances with the scope identifier installed on the creation context.
//
// A provider is built once per session-initialization event and is read-only
// afterwards, so concurrent requests may resolve against it freely.
package provider
