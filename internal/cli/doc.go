// Package cli translates command-line arguments and PLUGRID_* environment
// variables into an app.Config.
package cli
