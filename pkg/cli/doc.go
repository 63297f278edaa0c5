// Package cli implements the reqparam command line.
//
// Commands:
//
//	reqparam check    validate raw parameters against a route and print the result
//	reqparam inspect  show compiled parameter definitions
//	reqparam version  show build information
//
// Route files come from --routes or REQPARAM_ROUTES. Logging is configured by
// --log-level and --log-format, falling back to REQPARAM_LOG_LEVEL and
// REQPARAM_LOG_FORMAT.
package cli
