// Package types holds the small shared types used across headline:
// the FS abstraction that lets every component run against an in-memory
// filesystem in tests, and text positions used for cursor placement.
package types
