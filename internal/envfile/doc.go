// Package envfile reads KEY=VALUE environment files and maps their variable
// names onto GitHub secret names.
//
// Load returns an ordered Map: iteration follows first appearance in the
// file, and a repeated key keeps its first position but takes the last value.
// Comments, blank lines, and lines without '=' are skipped rather than
// reported.
//
// Normalize is the only name transform: ASCII letters are uppercased and '-'
// becomes '_'. Two source names can normalize to the same secret name; the
// later one wins wherever the result is keyed by normalized name.
package envfile
