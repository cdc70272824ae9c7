// Package commands holds the implementations behind the relink CLI. Each
// subpackage takes plain options, does its work through pkg/ packages and
// returns a result the CLI renders; none of them print.
package commands
