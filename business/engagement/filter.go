package engagement

import "engagementReco/domain"

// Filter keeps rows whose label is in labels and whose engagement score lies
// in [filter.MinScore, filter.MaxScore]. Input order is preserved. An empty
// label set or an inverted range matches nothing.
func Filter(rows []domain.UserRecord, filter domain.UserFilter) []domain.UserRecord {
	out := make([]domain.UserRecord, 0)
	if len(filter.Labels) == 0 || filter.MinScore > filter.MaxScore {
		return out
	}

	allowed := make(map[string]struct{}, len(filter.Labels))
	for _, l := range filter.Labels {
		allowed[domain.NormalizeLabel(l)] = struct{}{}
	}

	for _, r := range rows {
		if _, ok := allowed[domain.NormalizeLabel(r.ClusterLabel)]; !ok {
			continue
		}
		// NaN fails both comparisons
		if r.ScoreEngagement >= filter.MinScore && r.ScoreEngagement <= filter.MaxScore {
			out = append(out, r)
		}
	}
	return out
}
