// Package tier models the architectural layering policy: named priority
// bands ("tiers"), their category sub-ranges, and the rules stating which
// other tiers each tier's plugins may depend on.
//
// A catalog file looks like:
//
//	tier "Essential" {
//	  range      = [1, 9999]
//	  depends_on = []
//
//	  category "Core"   { range = [1, 4999] }
//	  category "Plugin" { range = [5000, 9999] }
//	}
//
//	tier "GameGeneral" {
//	  range      = [10000, 19999]
//	  depends_on = ["Essential"]
//	}
//
// The catalog is loaded once per process and treated as read-only for every
// resolution call afterwards.
package tier
