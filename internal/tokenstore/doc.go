// Package tokenstore keeps the capability token between invocations.
// A store has no knowledge of token validity: a token is only replaced
// after the server rejected it.
package tokenstore
