// Package revision reads the revision number embedded in link file names.
//
// File names follow the convention
//
//	<base>-RVT-<N>-<suffix>.<ext>
//
// where N is a non-negative integer that grows with every issued revision.
// A file without the RVT marker has revision 0.
package revision
