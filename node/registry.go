package node

import "errors"

// ErrNotFound is returned by Info/ID lookups for a name or id that has
// never been registered. Callers branch on it with errors.Is.
var ErrNotFound = errors.New("node: not found")

// FindOrAdd returns the ID for name, assigning a new dense ID and deriving
// its Kind from the first byte of name if this is the first sighting.
// Complexity: O(1) amortized.
func (r *Registry) FindOrAdd(name string) ID {
	r.mu.RLock()
	id, ok := r.byNam[name]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock: another writer may have registered
	// name between the RUnlock above and this Lock.
	if id, ok = r.byNam[name]; ok {
		return id
	}
	id = ID(len(r.byID))
	r.byID = append(r.byID, Info{Name: name, Kind: KindFromName(name)})
	r.byNam[name] = id

	return id
}

// Exists reports whether name has already been registered.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byNam[name]

	return ok
}

// Lookup returns the ID already assigned to name, or ErrNotFound.
// Unlike FindOrAdd, Lookup never allocates a new node.
func (r *Registry) Lookup(name string) (ID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byNam[name]
	if !ok {
		return 0, ErrNotFound
	}

	return id, nil
}

// Info returns the registered Info for id (a value copy; Marks included).
func (r *Registry) Info(id ID) (Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(r.byID) {
		return Info{}, ErrNotFound
	}

	return r.byID[id], nil
}

// Name is a convenience wrapper around Info for just the name.
func (r *Registry) Name(id ID) (string, error) {
	info, err := r.Info(id)
	if err != nil {
		return "", err
	}

	return info.Name, nil
}

// Kind is a convenience wrapper around Info for just the kind.
func (r *Registry) Kind(id ID) (Kind, error) {
	info, err := r.Info(id)
	if err != nil {
		return KindUnknown, err
	}

	return info.Kind, nil
}

// Len returns the number of registered nodes (also the exclusive upper
// bound of valid IDs: every id in [0, Len()) is registered).
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}

// GetMarks returns the current Bloom mark set of id.
func (r *Registry) GetMarks(id ID) (Marks, error) {
	info, err := r.Info(id)
	if err != nil {
		return Marks{}, err
	}

	return info.Marks, nil
}

// SetMarks overwrites id's Bloom mark set. Used by engine.WriteMarkBeacons
// to persist the value returned by bloom.Mark.
func (r *Registry) SetMarks(id ID, m Marks) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(id) < 0 || int(id) >= len(r.byID) {
		return ErrNotFound
	}
	r.byID[id].Marks = m

	return nil
}

// ResetMarks clears every node's Bloom mark set. Not reachable from the
// wire protocol; exposed only for test determinism (spec §9).
func (r *Registry) ResetMarks() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.byID {
		r.byID[i].Marks = Marks{}
	}
}

// Names returns every registered name in ascending ID order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.byID))
	for i, info := range r.byID {
		out[i] = info.Name
	}

	return out
}
