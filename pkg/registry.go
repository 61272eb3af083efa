package casetree

// Stage names used as registry keys
const (
	StagePrimary = "primary"
	StageNested  = "nested"
	StageSubID   = "nested-sub"
)

// Registry tracks which identifiers each stage has already accepted.
// It is plain process-lifetime state owned by the Runner; entries are
// never removed. The sub-identifier set under StageSubID is global:
// a sub-identifier copied once anywhere is never copied again, even
// under a different parent.
type Registry struct {
	stages map[string]map[string]struct{}
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{stages: make(map[string]map[string]struct{})}
}

// Seen reports whether id was already marked in stage
func (r *Registry) Seen(stage, id string) bool {
	ids, ok := r.stages[stage]
	if !ok {
		return false
	}
	_, ok = ids[id]
	return ok
}

// Mark records id as accepted in stage. Callers must check Seen
// first; Mark never reports prior state.
func (r *Registry) Mark(stage, id string) {
	ids, ok := r.stages[stage]
	if !ok {
		ids = make(map[string]struct{})
		r.stages[stage] = ids
	}
	ids[id] = struct{}{}
}

// Count returns how many identifiers stage has accepted
func (r *Registry) Count(stage string) int {
	return len(r.stages[stage])
}
