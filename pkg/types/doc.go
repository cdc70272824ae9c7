// Package types defines the core types and interfaces used throughout relink.
// This includes the LinkSource and Document capability interfaces the host
// integration implements, and the data structures that flow through a run:
// Link, LinkInfo, WorksetConfig, LinkEntry and RunResult.
package types
