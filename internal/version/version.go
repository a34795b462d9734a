// Package version provides centralized version information for the
// spobatch library and its CLI.
//
// Follows semantic versioning (semver) conventions.
package version

// LibraryVersion holds the current batchclient library version.
// Format: major.minor.patch[-prerelease][+build]
const LibraryVersion = "0.1.0-dev"

// CLIVersion holds the current spobatchctl CLI version, allowing the CLI
// to evolve independently of the library it embeds.
// Format: major.minor.patch[-prerelease][+build]
const CLIVersion = "0.1.0-dev"
