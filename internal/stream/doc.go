// Package stream decodes the event-stream body returned by the translate
// endpoint. It reassembles data lines across arbitrary chunk boundaries,
// decodes each frame into a typed event and folds the events into an
// EventMap keyed by event name (last write wins).
package stream
