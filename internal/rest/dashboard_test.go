package rest

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"engagementReco/business/engagement"
	"engagementReco/business/recommendation"
	"engagementReco/domain"
	"engagementReco/internal/repository/cache"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sourceFunc func(ctx context.Context) ([]domain.UserRecord, error)

func (f sourceFunc) Load(ctx context.Context) ([]domain.UserRecord, error) {
	return f(ctx)
}

func testRows() []domain.UserRecord {
	return []domain.UserRecord{
		{VisitorID: "u1", ClusterLabel: recommendation.LabelPowerUser, ScoreEngagement: 0.93, NbSessions: 40, NbClicks: 300, DaysSinceLastActivity: 1, NbRequests: 90, FirstSessionYYYYMMDD: "20230105"},
		{VisitorID: "u2", ClusterLabel: recommendation.LabelGhost, ScoreEngagement: 0.05, NbSessions: 1},
		{VisitorID: "u3", ClusterLabel: recommendation.LabelDiscreet, ScoreEngagement: 0.4},
		{VisitorID: "u4", ClusterLabel: recommendation.LabelPowerUser, ScoreEngagement: math.NaN()},
		{VisitorID: "u5", ClusterLabel: "Le robot", ScoreEngagement: 1},
	}
}

func newTestServer(t *testing.T, settings DashboardSettings, src cache.Source) *echo.Echo {
	t.Helper()
	resolver := recommendation.NewResolver(recommendation.DefaultTable())
	dataset := cache.NewDatasetCache(src, func(rows []domain.UserRecord) []domain.UserRecord {
		return engagement.Derive(rows, resolver.Resolve)
	}, "users.xlsx")
	svc := engagement.NewDashboardService(dataset, resolver)

	h := NewDashboardHandler(svc, settings)
	admin := NewDatasetAdminHandler(svc)

	e := echo.New()
	api := e.Group("/api/v1")
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/users", h.GetVisitorIDs)
	api.GET("/users/filter", h.FilterUsers)
	api.GET("/users/:visitor_id", h.GetUserProfile)
	api.GET("/clusters", h.GetClusters)
	api.GET("/clusters/stats", h.GetClusterStats)
	api.GET("/recommendations", h.GetRecommendation)
	api.GET("/personas", h.GetPersonas)
	api.GET("/admin/dataset", admin.GetDataset)
	api.POST("/admin/dataset/reload", admin.Reload)
	return e
}

func staticSource() cache.Source {
	return sourceFunc(func(ctx context.Context) ([]domain.UserRecord, error) {
		return testRows(), nil
	})
}

func defaultSettings() DashboardSettings {
	return DashboardSettings{
		Title:           "Moteur de Recommandation",
		Intro:           "intro",
		ShowFilterPanel: true,
		ShowFooter:      true,
		FooterCaption:   "Projet - M2 Data Management",
	}
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetDashboard(t *testing.T) {
	e := newTestServer(t, defaultSettings(), staticSource())

	rec := get(e, "/api/v1/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"title":"Moteur de Recommandation"`)
	assert.Contains(t, body, `"show_filter_panel":true`)
	assert.Contains(t, body, `"footer":"Projet - M2 Data Management"`)
	assert.Contains(t, body, `"users":5`)
	assert.Contains(t, body, `"generation":1`)
}

func TestGetDashboardWithoutFooter(t *testing.T) {
	settings := defaultSettings()
	settings.ShowFooter = false
	e := newTestServer(t, settings, staticSource())

	rec := get(e, "/api/v1/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"footer"`)
}

func TestGetVisitorIDs(t *testing.T) {
	e := newTestServer(t, defaultSettings(), staticSource())

	rec := get(e, "/api/v1/users")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `["u1","u2","u3","u4","u5"]`)
}

func TestGetUserProfile(t *testing.T) {
	e := newTestServer(t, defaultSettings(), staticSource())

	rec := get(e, "/api/v1/users/u1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"score_sur_10":9.3`)
	assert.Contains(t, body, `"score_display":"9.3 / 10"`)
	assert.Contains(t, body, `"recommendation":"🏆 Proposer des fonctionnalités premium ou des badges."`)
	assert.Contains(t, body, `"nb_clicks":300`)

	rec = get(e, "/api/v1/users/u4")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"score_engagement":null`)

	rec = get(e, "/api/v1/users/ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var errBody ResponseError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Contains(t, errBody.Message, "user not found")
}

func TestFilterUsers(t *testing.T) {
	e := newTestServer(t, defaultSettings(), staticSource())

	q := url.Values{}
	q.Add("label", recommendation.LabelPowerUser)
	q.Add("label", recommendation.LabelDiscreet)
	q.Set("min", "0.4")
	q.Set("max", "1")
	rec := get(e, "/api/v1/users/filter?"+q.Encode())
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"visitor_id":"u1"`)
	assert.Contains(t, body, `"visitor_id":"u3"`)
	assert.NotContains(t, body, `"visitor_id":"u4"`)
	assert.NotContains(t, body, `"visitor_id":"u5"`)

	// no label: every cluster, default range [0,1]
	rec = get(e, "/api/v1/users/filter")
	require.Equal(t, http.StatusOK, rec.Code)
	for _, id := range []string{"u1", "u2", "u3", "u5"} {
		assert.Contains(t, rec.Body.String(), `"visitor_id":"`+id+`"`)
	}

	rec = get(e, "/api/v1/users/filter?min=0.9&max=0.1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"visitor_id"`)

	rec = get(e, "/api/v1/users/filter?min=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(e, "/api/v1/users/filter?label=")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetClusterStats(t *testing.T) {
	e := newTestServer(t, defaultSettings(), staticSource())

	rec := get(e, "/api/v1/clusters/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `{"cluster_label":"Le power user","score_moyen":9.3}`)
	assert.Contains(t, body, `{"cluster_label":"Le robot","score_moyen":10}`)

	rec = get(e, "/api/v1/clusters/stats?label=Le+robot")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Le robot")
	assert.NotContains(t, rec.Body.String(), "Le power user")
}

func TestGetClusterStatsIgnoresFilterWhenPanelDisabled(t *testing.T) {
	settings := defaultSettings()
	settings.ShowFilterPanel = false
	e := newTestServer(t, settings, staticSource())

	rec := get(e, "/api/v1/clusters/stats?label=Le+robot")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Le power user")
}

func TestGetRecommendationAndPersonas(t *testing.T) {
	e := newTestServer(t, defaultSettings(), staticSource())

	rec := get(e, "/api/v1/recommendations?cluster=Le+power+user")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "🏆 Proposer des fonctionnalités premium ou des badges.")

	rec = get(e, "/api/v1/recommendations?cluster=Le+robot")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), recommendation.DefaultAction)

	rec = get(e, "/api/v1/recommendations")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), recommendation.DefaultAction)

	rec = get(e, "/api/v1/personas")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"persona":"Le curieux discret"`)
	assert.Contains(t, rec.Body.String(), "Accès premium, badges, remerciements.")
}

func TestDataSourceErrorIsServiceUnavailable(t *testing.T) {
	src := sourceFunc(func(ctx context.Context) ([]domain.UserRecord, error) {
		return nil, &domain.DataSourceError{Path: "users.xlsx", Op: "stat", Err: errors.New("no such file")}
	})
	e := newTestServer(t, defaultSettings(), src)

	for _, target := range []string{"/api/v1/dashboard", "/api/v1/users", "/api/v1/users/u1", "/api/v1/clusters", "/api/v1/clusters/stats", "/api/v1/users/filter"} {
		rec := get(e, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}

	// lookups that do not need the dataset still work
	rec := get(e, "/api/v1/personas")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReloadDataset(t *testing.T) {
	calls := 0
	src := sourceFunc(func(ctx context.Context) ([]domain.UserRecord, error) {
		calls++
		if calls > 2 {
			return nil, &domain.DataSourceError{Path: "users.xlsx", Op: "parse", Err: errors.New("bad")}
		}
		return testRows(), nil
	})
	e := newTestServer(t, defaultSettings(), src)

	require.Equal(t, http.StatusOK, get(e, "/api/v1/users").Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/dataset/reload", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"generation":2`)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/dataset/reload", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// the old table is still served
	assert.Equal(t, http.StatusOK, get(e, "/api/v1/users").Code)
	rec = get(e, "/api/v1/admin/dataset")
	assert.Contains(t, rec.Body.String(), `"rows":5`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrUserNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(&domain.DataSourceError{Err: errors.New("x")}))
	assert.Equal(t, http.StatusGatewayTimeout, statusFor(context.DeadlineExceeded))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("x")))
}
