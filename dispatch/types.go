// Package dispatch implements C9: it decodes a generic msgpack-decoded
// value (already unmarshalled by transport into Go's dynamic msgpack
// representation — string, float64, bool, []any, nil) into one of the
// request shapes spec.md §6 lists, and routes it to the matching engine
// method. It never touches the wire itself; that is transport's job.
package dispatch

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/meritrank/engine"
)

// CommandVersion is the literal "ver" request; its reply is the version
// string supplied by the entrypoint (spec §6: "ver" -> string version).
const CommandVersion = "ver"

// Dispatcher routes decoded requests to an AugMultiGraph. It carries no
// mutable state of its own; Version is fixed at construction, and the
// request's own ("context", C, payload) envelope carries the session's
// context name per call rather than across calls (mirroring the
// original's fresh per-request GraphContext).
type Dispatcher struct {
	engine  *engine.AugMultiGraph
	version string
	log     zerolog.Logger
}

// New builds a Dispatcher over engine g, replying version to "ver".
func New(g *engine.AugMultiGraph, version string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{engine: g, version: version, log: log}
}
