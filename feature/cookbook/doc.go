// Package cookbook fetches blueprint material lists from a third-party recipe API.
//
// The fetched data hydrates the locally configured blueprints before costing. A failed
// fetch is never fatal: the cost engine logs it and keeps the local definition.
package cookbook
