package rest

import (
	"fmt"

	"engagementReco/domain"
)

type UserView struct {
	VisitorID             string   `json:"visitor_id"`
	ClusterLabel          string   `json:"cluster_label"`
	ScoreEngagement       *float64 `json:"score_engagement"`
	ScoreSur10            *float64 `json:"score_sur_10"`
	NbSessions            int      `json:"nb_sessions"`
	NbClicks              int      `json:"nb_clicks"`
	DaysSinceLastActivity int      `json:"days_since_last_activity"`
	NbRequests            int      `json:"nb_requests"`
	FirstSession          string   `json:"first_session_yyyymmdd"`
	Recommendation        string   `json:"recommandation,omitempty"`
}

type ProfileView struct {
	User           UserView `json:"user"`
	ScoreDisplay   string   `json:"score_display"`
	Recommendation string   `json:"recommendation"`
}

type ClusterStatView struct {
	ClusterLabel string   `json:"cluster_label"`
	MeanScore    *float64 `json:"score_moyen"`
}

type RecommendationView struct {
	Cluster        string `json:"cluster"`
	Recommendation string `json:"recommendation"`
}

type DashboardView struct {
	Title           string             `json:"title"`
	Intro           string             `json:"intro"`
	ShowFilterPanel bool               `json:"show_filter_panel"`
	Footer          string             `json:"footer,omitempty"`
	Clusters        []string           `json:"clusters"`
	Users           int                `json:"users"`
	Dataset         domain.DatasetInfo `json:"dataset"`
}

func newUserView(r domain.UserRecord) UserView {
	return UserView{
		VisitorID:             r.VisitorID,
		ClusterLabel:          r.ClusterLabel,
		ScoreEngagement:       nullable(r.ScoreEngagement),
		ScoreSur10:            nullable(r.ScoreSur10),
		NbSessions:            r.NbSessions,
		NbClicks:              r.NbClicks,
		DaysSinceLastActivity: r.DaysSinceLastActivity,
		NbRequests:            r.NbRequests,
		FirstSession:          r.FirstSessionYYYYMMDD,
		Recommendation:        r.Recommendation,
	}
}

func newUserViews(rows []domain.UserRecord) []UserView {
	out := make([]UserView, 0, len(rows))
	for _, r := range rows {
		out = append(out, newUserView(r))
	}
	return out
}

func newProfileView(p domain.UserProfile) ProfileView {
	return ProfileView{
		User:           newUserView(p.User),
		ScoreDisplay:   fmt.Sprintf("%v / 10", p.User.ScoreSur10),
		Recommendation: p.Recommendation,
	}
}

func newClusterStatViews(stats []domain.ClusterStat) []ClusterStatView {
	out := make([]ClusterStatView, 0, len(stats))
	for _, s := range stats {
		out = append(out, ClusterStatView{ClusterLabel: s.ClusterLabel, MeanScore: nullable(s.MeanScore)})
	}
	return out
}
