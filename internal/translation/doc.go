// Package translation resolves a query against the streaming translate
// endpoint. The Translator sends the request with the cached capability
// token, feeds the response to the stream parser and, when the server
// rejects the token, refreshes it and retries exactly once. Select then
// picks the richest result out of the aggregated events.
package translation
