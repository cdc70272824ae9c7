// Package testutil provides utilities for testing relink components.
//
// Key components:
//   - FakeSource: in-memory types.LinkSource that records reloads and relinks
//   - FakeDocument: open document with a configurable workset table
//   - LinksFolder: seeds a types.FS folder with link files
//
// All test data should be defined inline, not in external files.
package testutil
