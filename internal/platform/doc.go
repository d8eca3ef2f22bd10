package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, external tool lookup, and the connectivity preflight.
