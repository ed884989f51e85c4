package recommendation

import (
	"bytes"
	"fmt"
	"os"

	"engagementReco/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadTable reads a persona table from a YAML file:
//
//	default: "❓ Aucune recommandation disponible."
//	personas:
//	  - cluster: 0
//	    label: "Le fantôme"
//	    description: "..."
//	    action: "📧 Relance par email avec contenu attractif."
//	    recommendation: "📧 Relance email + contenu incitatif."
//
// An empty path returns DefaultTable.
func LoadTable(path string) (domain.RecommendationTable, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.RecommendationTable{}, fmt.Errorf("failed to read recommendations file: %w", err)
	}

	return ParseTable(raw)
}

func ParseTable(raw []byte) (domain.RecommendationTable, error) {
	var table domain.RecommendationTable

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return domain.RecommendationTable{}, fmt.Errorf("failed to decode recommendations: %w", err)
	}

	if err := validator.New().Struct(&table); err != nil {
		return domain.RecommendationTable{}, fmt.Errorf("invalid recommendations: %w", err)
	}

	seen := make(map[string]struct{}, len(table.Personas))
	for _, p := range table.Personas {
		label := domain.NormalizeLabel(p.Label)
		if _, dup := seen[label]; dup {
			return domain.RecommendationTable{}, fmt.Errorf("invalid recommendations: duplicate persona %q", label)
		}
		seen[label] = struct{}{}
	}

	return table, nil
}
