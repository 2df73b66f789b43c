// Package manifest defines the format-agnostic plugin declaration model and
// loads it from HCL files.
//
// A plugin manifest looks like:
//
//	plugin "map-renderer" {
//	  priority = 15100
//	  version  = "1.2.0"
//	  tier     = "GameGeneral"
//
//	  dependency "asset-cache" {
//	    optional   = true
//	    constraint = ">=1.0.0"
//	  }
//	}
//
// Manifests may be split across many files and directories; the loader
// consolidates everything into a single slice so the resolver can operate on
// the complete set at once.
package manifest
