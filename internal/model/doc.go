package model

// Package model defines domain data structures used across the app: source
// references, format catalog entries, job specs, progress events, and the
// session status enum with explicit state transitions.
