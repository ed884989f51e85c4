package domain

import "time"

const FirstSessionLayout = "20060102"

type UserRecord struct {
	VisitorID             string  `json:"visitor_id"`
	ClusterLabel          string  `json:"cluster_label"`
	ScoreEngagement       float64 `json:"score_engagement"`
	NbSessions            int     `json:"nb_sessions"`
	NbClicks              int     `json:"nb_clicks"`
	DaysSinceLastActivity int     `json:"days_since_last_activity"`
	NbRequests            int     `json:"nb_requests"`
	FirstSessionYYYYMMDD  string  `json:"first_session_yyyymmdd"`

	// derived
	ScoreSur10     float64 `json:"score_sur_10"`
	Recommendation string  `json:"recommandation,omitempty"`
}

// FirstSession parses FirstSessionYYYYMMDD; ok is false when the cell is empty or malformed.
func (r UserRecord) FirstSession() (time.Time, bool) {
	if r.FirstSessionYYYYMMDD == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(FirstSessionLayout, r.FirstSessionYYYYMMDD)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type UserProfile struct {
	User           UserRecord `json:"user"`
	Recommendation string     `json:"recommendation"`
}

type UserFilter struct {
	Labels   []string `json:"labels"`
	MinScore float64  `json:"min_score"`
	MaxScore float64  `json:"max_score"`
}

type ClusterStat struct {
	ClusterLabel string  `json:"cluster_label"`
	MeanScore    float64 `json:"score_moyen"`
}

type DatasetInfo struct {
	Path       string    `json:"path"`
	Loaded     bool      `json:"loaded"`
	Rows       int       `json:"rows"`
	LoadedAt   time.Time `json:"loaded_at"`
	Generation uint64    `json:"generation"`
}
