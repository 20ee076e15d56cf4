// Package processor contains the top-level flow of fanyi. It builds the
// token store, token provider and translator from the command-line
// flags, resolves single queries or batch files and hands the outcomes
// to the renderer. This package serves as the main coordinator between
// all other components.
package processor
