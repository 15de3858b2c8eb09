// Package costing computes per-unit manufacturing costs for whitelisted blueprints.
//
// Engine.Refresh optionally hydrates blueprint definitions from a cookbook source, rejects
// the whole run when any blueprint is off the whitelist, and then costs each blueprint:
//
//	required = ceil(amount * quantity * (100 - ME) / 100)   per material
//	unit     = sum(required * price) / quantity
//	total    = unit + unit * tax_rate
//
// Results are cached under a SHA-256 of the blueprint, the defaults, the prices of its own
// materials and its build quantity. Cached costs never expire; any input change produces a
// new hash and a new row.
package costing
