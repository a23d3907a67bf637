// Package translate maps storage failures onto response envelopes.
//
// Translation is a table lookup keyed by [storage.Code]; every code of the storage
// vocabulary has exactly one rule (status + message builder). Messages are written for
// end users and never quote driver text: only curated metadata (column names, model
// name, constraint name) reaches the client, and only for client-correctable failures.
//
// The duplicate-key message is phrased heuristically from the column names. The
// heuristic is kept for compatibility with existing clients and is not meant to grow.
package translate
