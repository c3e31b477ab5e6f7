// Package providers registers every listing source implementation with the
// sources registry. Import it for its side effects.
package providers
