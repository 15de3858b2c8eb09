// Package pricing supplies live sell prices for the distinguished hub of the export.
//
// A live price is optional. Providers report "no price" instead of failing, so a dead
// price source only means the static overrides are kept.
package pricing
