package cond

// Registry maps relation aliases to the identifiers of the views that
// stand in for them. It grows monotonically during one traversal and is
// discarded with the analysis; a new query gets a fresh Registry.
type Registry struct {
	views map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[string]string)}
}

// Register maps alias to viewID. A view identifier always resolves to
// itself as well, which keeps Substitute idempotent: a predicate already
// rewritten against views resolves stably instead of failing.
// Re-registering an alias is allowed; pass-through operators re-point a
// relayed alias at their own view.
func (r *Registry) Register(alias, viewID string) {
	if alias != "" {
		r.views[alias] = viewID
	}
	r.views[viewID] = viewID
}

// Resolve returns the view identifier for alias, or a ViewNotFoundError
// if the alias was never registered.
func (r *Registry) Resolve(alias string) (string, error) {
	if v, ok := r.views[alias]; ok {
		return v, nil
	}
	return "", &ViewNotFoundError{Alias: alias}
}

// Len returns the number of registered names.
func (r *Registry) Len() int { return len(r.views) }
