package domain

type Persona struct {
	ClusterID      int    `json:"cluster_id" yaml:"cluster"`
	Label          string `json:"persona" yaml:"label" validate:"required"`
	Description    string `json:"description" yaml:"description"`
	Action         string `json:"action" yaml:"action" validate:"required"`
	Recommendation string `json:"recommendation" yaml:"recommendation"`
}

// RecommendationTable is the static persona -> action mapping served by the resolver.
type RecommendationTable struct {
	Personas []Persona `json:"personas" yaml:"personas" validate:"required,min=1,dive"`
	Default  string    `json:"default" yaml:"default" validate:"required"`
}
