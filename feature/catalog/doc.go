// Package catalog holds the immutable whitelist, efficiency and hub tables.
//
// A Catalog is built once from the bundled build plan and the operator profile, then passed
// by reference to the cost engine and the export. It never changes after construction and
// its getters return copies.
package catalog
