package dispatch

import (
	"github.com/katalvlaran/meritrank/engine"
	"github.com/katalvlaran/meritrank/node"
)

// tryReadFiltered matches the two "src"-clause families (spec §6):
//
//	(("src","=",ego), ("dest","=",target))  -> read_node_score
//	(("src","=",ego), ...)                  -> read_scores
//
// filters is the decoded first element of the (filters, unit[, "null"])
// envelope — itself a tuple of clause tuples.
func (d *Dispatcher) tryReadFiltered(filtersVal any, context string) (any, bool) {
	filters, ok := asTuple(filtersVal)
	if !ok || len(filters) == 0 {
		return nil, false
	}
	ego, ok := clauseStringValue(filters[0], "src", "=")
	if !ok {
		return nil, false
	}

	if len(filters) == 2 {
		if target, ok := clauseStringValue(filters[1], "dest", "="); ok {
			return d.replyNodeScore(context, ego, target), true
		}
	}

	return d.replyScores(context, ego, filters[1:]), true
}

func (d *Dispatcher) replyNodeScore(context, ego, target string) any {
	r := d.engine.ReadNodeScore(context, ego, target)

	return []any{[]any{r.Ego, r.Target, r.Score}}
}

// replyScores builds a ScoresQuery from whichever optional clauses are
// present, generalising the original wire format's eight near-duplicate
// match arms (one per present/absent clause combination) into a single
// scan: every clause after the mandatory "src" is independently optional
// and independently recognised by its field name.
func (d *Dispatcher) replyScores(context, ego string, clauses []any) any {
	q := engine.ScoresQuery{Count: -1}

	for _, c := range clauses {
		if kindLike, ok := clauseStringValue(c, "target", "like"); ok {
			q.KindFilter = node.KindFromName(kindLike)

			continue
		}
		if hp, ok := clauseValue(c, "hide_personal", "="); ok {
			if b, ok := asBool(hp); ok {
				q.HidePersonal = b
			}

			continue
		}
		if v, ok := clauseValue(c, "score", ">"); ok {
			if n, ok := asNumber(v); ok {
				q.ScoreGT = &n
			}

			continue
		}
		if v, ok := clauseValue(c, "score", ">="); ok {
			if n, ok := asNumber(v); ok {
				q.ScoreGTE = &n
			}

			continue
		}
		if v, ok := clauseValue(c, "score", "<"); ok {
			if n, ok := asNumber(v); ok {
				q.ScoreLT = &n
			}

			continue
		}
		if v, ok := clauseValue(c, "score", "<="); ok {
			if n, ok := asNumber(v); ok {
				q.ScoreLTE = &n
			}

			continue
		}
		if v, ok := clauseValue(c, "limit", "="); ok {
			if n, ok := asNumber(v); ok {
				q.Count = int(n)
			}

			continue
		}
	}

	rows := d.engine.ReadScores(context, ego, q)
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = []any{r.Ego, r.Target, r.Score}
	}

	return out
}

// tryGravity matches the read_graph / read_graph_nodes families:
//
//	((ego,"gravity",focus), positive_only, limit)
//	((ego,"gravity_nodes",focus), positive_only, limit)
//	((ego,"connected"),)  is handled separately by tryConnected.
func (d *Dispatcher) tryGravity(reqVal any, context string) (any, bool) {
	req, ok := asTuple(reqVal)
	if !ok || len(req) != 3 {
		return nil, false
	}
	head, ok := asTuple(req[0])
	if !ok || len(head) != 3 {
		return nil, false
	}
	ego, ok := asString(head[0])
	if !ok {
		return nil, false
	}
	tag, ok := asString(head[1])
	if !ok {
		return nil, false
	}
	focus, ok := asString(head[2])
	if !ok {
		return nil, false
	}
	positiveOnly, _ := asBool(req[1])
	limitF, _ := asNumber(req[2])
	limit := int(limitF)

	switch tag {
	case "gravity":
		rows := d.engine.ReadGraph(context, ego, focus, positiveOnly, 0, limit)
		out := make([]any, len(rows))
		for i, r := range rows {
			out[i] = []any{r.Src, r.Dst, r.Weight}
		}

		return out, true
	case "gravity_nodes":
		return d.engine.ReadGraphNodes(context, ego, focus, positiveOnly), true
	}

	return nil, false
}

// tryConnected matches ((ego,"connected"),).
func (d *Dispatcher) tryConnected(reqVal any, context string) (any, bool) {
	req, ok := asTuple(reqVal)
	if !ok || len(req) != 1 {
		return nil, false
	}
	head, ok := asTuple(req[0])
	if !ok || len(head) != 2 {
		return nil, false
	}
	ego, ok := asString(head[0])
	if !ok {
		return nil, false
	}
	if tag, ok := asString(head[1]); !ok || tag != "connected" {
		return nil, false
	}

	return d.engine.ReadConnected(context, ego), true
}
