// Package middleware contains HTTP middleware for the local report surface.
//
// # Components
//
//   - RayID: generates a unique request id for every incoming request, stores it in the
//     request locals and echoes it in the response headers for tracing.
package middleware
