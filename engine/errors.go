package engine

import "errors"

// ErrUnknownNode names the failure of an operation on a name the registry
// has never assigned an id to. No engine method returns it: the write
// paths treat unknown endpoints as a silent no-op (spec §4.4 "Delete is a
// no-op if either endpoint is unknown") and return nothing.
var ErrUnknownNode = errors.New("engine: unknown node")
