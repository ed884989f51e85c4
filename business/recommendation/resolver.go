package recommendation

import (
	"engagementReco/domain"
)

// Resolver maps a cluster label to its action string. It never fails:
// labels missing from the table resolve to the table's default.
type Resolver struct {
	actions  map[string]string
	personas []domain.Persona
	fallback string
}

func NewResolver(table domain.RecommendationTable) *Resolver {
	r := &Resolver{
		actions:  make(map[string]string, len(table.Personas)),
		personas: make([]domain.Persona, len(table.Personas)),
		fallback: table.Default,
	}
	copy(r.personas, table.Personas)
	for _, p := range table.Personas {
		r.actions[domain.NormalizeLabel(p.Label)] = p.Action
	}
	return r
}

func (r *Resolver) Resolve(label string) string {
	if action, ok := r.actions[domain.NormalizeLabel(label)]; ok {
		return action
	}
	return r.fallback
}

func (r *Resolver) Default() string {
	return r.fallback
}

// Personas returns the reference table in cluster order.
func (r *Resolver) Personas() []domain.Persona {
	out := make([]domain.Persona, len(r.personas))
	copy(out, r.personas)
	return out
}
