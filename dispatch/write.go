package dispatch

// tryWrite matches the three mutation shapes (spec §6):
//
//	((subject,object,amount),)                               -> put edge
//	(("src","delete",ego), ("dest","delete",target))          -> delete edge
//	(("src","delete",ego),)                                   -> delete node
func (d *Dispatcher) tryWrite(reqVal any, context string) (any, bool) {
	req, ok := asTuple(reqVal)
	if !ok || len(req) == 0 {
		return nil, false
	}

	if ego, ok := clauseStringValue(req[0], "src", "delete"); ok {
		if len(req) == 2 {
			if target, ok := clauseStringValue(req[1], "dest", "delete"); ok {
				d.engine.WriteDeleteEdge(context, ego, target)

				return emptyRows(), true
			}

			return nil, false
		}
		if len(req) == 1 {
			d.engine.WriteDeleteNode(context, ego)

			return emptyRows(), true
		}

		return nil, false
	}

	if len(req) == 1 {
		triple, ok := asTuple(req[0])
		if !ok || len(triple) != 3 {
			return nil, false
		}
		subject, ok1 := asString(triple[0])
		object, ok2 := asString(triple[1])
		amount, ok3 := asNumber(triple[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		d.engine.WritePutEdge(context, subject, object, amount)

		return []any{[]any{subject, object, amount}}, true
	}

	return nil, false
}

func emptyRows() []any {
	return []any{}
}
