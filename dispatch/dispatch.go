package dispatch

import "fmt"

// Handle decodes req (already msgpack-decoded into Go's dynamic
// representation) and routes it to the matching engine operation. It
// never returns a Go error: an unrecognised shape yields the
// "Error: ..." string reply spec §7's Decode policy calls for, so the
// transport layer can always just re-encode whatever Handle returns.
func (d *Dispatcher) Handle(req any) any {
	return d.handleIn(req, "")
}

// handleIn is Handle with an explicit ambient context, threaded through
// recursive ("context", C, payload) envelopes.
func (d *Dispatcher) handleIn(req any, context string) any {
	if s, ok := asString(req); ok {
		switch s {
		case CommandVersion:
			return d.version
		}
	}

	top, ok := asTuple(req)
	if !ok || len(top) == 0 {
		return errReply(req)
	}

	// "nodes" / "edges" / "for_beacons_global" / "zerorec": (string, unit).
	if len(top) == 2 {
		if s, ok := asString(top[0]); ok && isUnit(top[1]) {
			switch s {
			case "nodes":
				return d.replyNodes()
			case "edges":
				return d.replyEdges(context)
			case "for_beacons_global":
				return d.replyReducedGraph(context)
			case "zerorec":
				d.engine.WriteRecalculateZero()

				return []any{}
			}
		}
	}

	// ("context", C, payload): dispatch payload under context C.
	if len(top) == 3 {
		if tag, ok := asString(top[0]); ok && tag == "context" {
			if ctxName, ok := asString(top[1]); ok {
				return d.handleIn(top[2], ctxName)
			}
		}
	}

	// Forms ending in the literal "null" force the null context
	// regardless of the ambient context: (filters, unit, "null").
	if len(top) == 3 {
		if tag, ok := asString(top[2]); ok && tag == "null" {
			if r, handled := d.tryReadFiltered(top[0], ""); handled {
				return r
			}
		}
	}

	// Everything else is (filters, unit) under the ambient context.
	if len(top) == 2 && isUnit(top[1]) {
		if r, handled := d.tryReadFiltered(top[0], context); handled {
			return r
		}
		if r, handled := d.tryWrite(top[0], context); handled {
			return r
		}
		if r, handled := d.tryGravity(top[0], context); handled {
			return r
		}
		if r, handled := d.tryConnected(top[0], context); handled {
			return r
		}
	}

	return errReply(req)
}

func errReply(req any) string {
	return fmt.Sprintf("Error: Cannot understand request %v", req)
}

func (d *Dispatcher) replyNodes() any {
	infos := d.engine.ReadNodes()
	out := make([]nodeRow, len(infos))
	for i, n := range infos {
		out[i] = nodeRow{Name: n.Name, Kind: n.Kind.String()}
	}

	return out
}

// nodeRow is the wire shape of one "nodes" reply row: name plus the
// human-readable kind, since the wire format has no Go Kind type to
// round-trip through msgpack.
type nodeRow struct {
	Name string
	Kind string
}

func (d *Dispatcher) replyEdges(context string) any {
	return d.engine.ReadEdges(context)
}

func (d *Dispatcher) replyReducedGraph(context string) any {
	return d.engine.ReadReducedGraph(context)
}
