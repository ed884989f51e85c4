package recommendation

import "engagementReco/domain"

const (
	LabelGhost     = "Le fantôme"
	LabelDiscreet  = "Le curieux discret"
	LabelPowerUser = "Le power user"

	DefaultAction = "❓ Aucune recommandation disponible."
)

// DefaultTable returns the built-in persona table. Each call returns a fresh copy.
func DefaultTable() domain.RecommendationTable {
	return domain.RecommendationTable{
		Personas: []domain.Persona{
			{
				ClusterID:      0,
				Label:          LabelGhost,
				Description:    "Très peu actif, dernière activité lointaine.",
				Action:         "📧 Relance par email avec contenu attractif.",
				Recommendation: "📧 Relance email + contenu incitatif.",
			},
			{
				ClusterID:      1,
				Label:          LabelDiscreet,
				Description:    "Un peu actif mais peu engagé.",
				Action:         "🔔 Notification avec article personnalisé.",
				Recommendation: "🔔 Notification personnalisée + article recommandé.",
			},
			{
				ClusterID:      2,
				Label:          LabelPowerUser,
				Description:    "Très actif, fort engagement (souvent staff ou bot).",
				Action:         "🏆 Proposer des fonctionnalités premium ou des badges.",
				Recommendation: "🏆 Accès premium, badges, remerciements.",
			},
		},
		Default: DefaultAction,
	}
}
