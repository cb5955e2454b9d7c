// Package featurepath resolves hierarchical feature identifiers against a
// grant tree. Feature paths are dot-separated ("egresos.avanzado") and a
// decision attached to a base path covers every sub-path unless a more
// specific decision exists.
//
// Resolution walks from the most specific match to the least specific and
// the first explicit decision wins. A path with no explicit decision on its
// walk is denied: the resolver fails closed.
//
// Basic usage:
//
//	grants := featurepath.NewTree().
//	    Allow("inventory").
//	    Deny("inventory.lots")
//
//	grants.Resolve("inventory.lots")       // false (explicit deny wins)
//	grants.Resolve("inventory.products")   // true  (inherits "inventory")
//	grants.Resolve("mesas")                // false (no decision, fail closed)
//
// Wildcard grants are supported: "dashboard.*" covers every sub-path of
// "dashboard" without granting "dashboard" itself.
package featurepath
