package engagement

import (
	"math"
	"sort"

	"engagementReco/domain"
)

// AggregateByCluster returns the mean ScoreSur10 per normalised cluster label
// present in rows, rounded to 2 decimals. NaN scores are left out of the mean; a cluster
// with only NaN scores maps to NaN.
func AggregateByCluster(rows []domain.UserRecord) map[string]float64 {
	type acc struct {
		sum float64
		n   int
	}
	groups := make(map[string]*acc)
	for _, r := range rows {
		label := domain.NormalizeLabel(r.ClusterLabel)
		g, ok := groups[label]
		if !ok {
			g = &acc{}
			groups[label] = g
		}
		if math.IsNaN(r.ScoreSur10) {
			continue
		}
		g.sum += r.ScoreSur10
		g.n++
	}

	means := make(map[string]float64, len(groups))
	for label, g := range groups {
		if g.n == 0 {
			means[label] = math.NaN()
			continue
		}
		means[label] = roundTo(g.sum/float64(g.n), 2)
	}
	return means
}

// ClusterStats is AggregateByCluster as a list sorted by label.
func ClusterStats(rows []domain.UserRecord) []domain.ClusterStat {
	means := AggregateByCluster(rows)

	labels := make([]string, 0, len(means))
	for label := range means {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	stats := make([]domain.ClusterStat, 0, len(labels))
	for _, label := range labels {
		stats = append(stats, domain.ClusterStat{ClusterLabel: label, MeanScore: means[label]})
	}
	return stats
}
