// Package report serves the cost report to the local operator over HTTP.
//
// Routes:
//
//	GET  /report/costs       latest results, computed on first request
//	POST /report/refresh     recompute now
//	GET  /report/export.csv  the per-hub report as CSV
//
// The server binds to loopback only and carries no further authentication.
package report
