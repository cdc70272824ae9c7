// Package manifest implements types.LinkSource over a document manifest
// file. A manifest describes one host document, the links it holds and the
// documents the host currently has open, so relink can run outside the host
// application.
//
// Three formats are read and written, chosen by file extension:
//
//	.yaml, .yml   YAML
//	.toml         TOML
//	.xml          XML
//
// Mutations made through Reload and Relink stay in memory until Save.
package manifest
