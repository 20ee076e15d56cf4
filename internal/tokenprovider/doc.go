// Package tokenprovider mints fresh capability tokens. Acquisition is slow
// (it drives a real browser or an external helper) and may fail; callers
// only reach for a provider after the server rejected the cached token.
package tokenprovider
