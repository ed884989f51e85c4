package engagement

import "engagementReco/domain"

// Derive returns a copy of rows with ScoreSur10 computed from ScoreEngagement.
// When resolve is non-nil the Recommendation column is filled for every row.
func Derive(rows []domain.UserRecord, resolve func(label string) string) []domain.UserRecord {
	out := make([]domain.UserRecord, len(rows))
	for i, r := range rows {
		r.ScoreSur10 = ScoreOutOf10(r.ScoreEngagement)
		if resolve != nil {
			r.Recommendation = resolve(r.ClusterLabel)
		}
		out[i] = r
	}
	return out
}
