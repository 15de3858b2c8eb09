// Package server holds the configuration of the local report server.
//
// The report surface is for the single operator on the same machine. The Config
// therefore only accepts loopback hosts; the serve command refuses to start otherwise.
package server
