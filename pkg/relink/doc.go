// Package relink drives a relink run: for every link of the host document
// it decides whether a newer revision exists in the link's folder and, if
// so, rebinds the link to it while keeping its closed worksets closed.
//
// A run is strictly sequential. Each link is processed to completion before
// the next one starts, and a failure on one link never stops the run; it is
// recorded as that link's outcome instead.
//
// Per link the orchestrator moves through these steps:
//
//	Filter          skip nested links and links outside the Links Folder
//	EnsureLoaded    reload unloaded links so their document can be inspected
//	Compare         current revision vs. highest revision in the folder
//	Resolve         workshared / not workshared / document not found
//	Relink          rebind through the LinkSource; failure => load_failed
package relink
