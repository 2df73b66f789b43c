// Package registryclient pulls plugin manifests from a remote plugin
// registry's JSON index so they can be merged with locally discovered
// manifests before resolution.
package registryclient
