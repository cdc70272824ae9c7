// Package filesystem provides filesystem implementations for relink.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem and an afero-backed one used for in-memory tests.
package filesystem
