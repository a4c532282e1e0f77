// Package identity generates the random identifiers used to name remote
// assets, revisions, and project albums.
//
// Identifiers are 16 bytes of cryptographically random data with UUID
// version-4/variant-1 bits set, rendered as 32 lowercase hex characters
// without separators. The service treats these as resource names, so
// predictability would let a third party guess asset URLs; always use
// this package rather than a local counter or timestamp scheme.
package identity
