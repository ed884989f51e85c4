package rest

import (
	"context"
	"net/http"
	"time"

	"engagementReco/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type DashboardService interface {
	Users(ctx context.Context) ([]domain.UserRecord, error)
	VisitorIDs(ctx context.Context) ([]string, error)
	Clusters(ctx context.Context) ([]string, error)
	UserProfile(ctx context.Context, visitorID string) (domain.UserProfile, error)
	FilterUsers(ctx context.Context, filter domain.UserFilter) ([]domain.UserRecord, error)
	ClusterStats(ctx context.Context, filter *domain.UserFilter) ([]domain.ClusterStat, error)
	Recommend(label string) string
	Personas() []domain.Persona
	DatasetInfo() domain.DatasetInfo
}

// DashboardSettings carries the display toggles of the dashboard.
type DashboardSettings struct {
	Title           string
	Intro           string
	ShowFilterPanel bool
	ShowFooter      bool
	FooterCaption   string
}

type DashboardHandler struct {
	service  DashboardService
	settings DashboardSettings
	validate *validator.Validate
	timeout  time.Duration
}

func NewDashboardHandler(service DashboardService, settings DashboardSettings) *DashboardHandler {
	return &DashboardHandler{
		service:  service,
		settings: settings,
		validate: validator.New(),
		timeout:  10 * time.Second,
	}
}

type FilterQuery struct {
	Labels []string `validate:"dive,required,max=200"`
	Min    float64
	Max    float64
}

type RecommendationQuery struct {
	Cluster string `query:"cluster"`
}

func (h *DashboardHandler) Settings() DashboardSettings {
	return h.settings
}

// GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ids, err := h.service.VisitorIDs(ctx)
	if err != nil {
		return respondError(c, "Failed to load dashboard", err)
	}
	clusters, err := h.service.Clusters(ctx)
	if err != nil {
		return respondError(c, "Failed to load dashboard", err)
	}

	view := DashboardView{
		Title:           h.settings.Title,
		Intro:           h.settings.Intro,
		ShowFilterPanel: h.settings.ShowFilterPanel,
		Clusters:        clusters,
		Users:           len(ids),
		Dataset:         h.service.DatasetInfo(),
	}
	if h.settings.ShowFooter {
		view.Footer = h.settings.FooterCaption
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}

// GET /api/v1/users
func (h *DashboardHandler) GetVisitorIDs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ids, err := h.service.VisitorIDs(ctx)
	if err != nil {
		return respondError(c, "Failed to list users", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ids))
}

// GET /api/v1/users/:visitor_id
func (h *DashboardHandler) GetUserProfile(c echo.Context) error {
	visitorID := c.Param("visitor_id")
	if visitorID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing visitor id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.service.UserProfile(ctx, visitorID)
	if err != nil {
		return respondError(c, "Failed to get user profile", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(newProfileView(profile)))
}

// GET /api/v1/users/filter?label=Le+fant%C3%B4me&label=Le+power+user&min=0.2&max=0.8
func (h *DashboardHandler) FilterUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	q, err := h.bindFilterQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	filter, err := h.toFilter(ctx, c, q)
	if err != nil {
		return respondError(c, "Failed to filter users", err)
	}

	users, err := h.service.FilterUsers(ctx, filter)
	if err != nil {
		return respondError(c, "Failed to filter users", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(newUserViews(users)))
}

// GET /api/v1/clusters
func (h *DashboardHandler) GetClusters(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	clusters, err := h.service.Clusters(ctx)
	if err != nil {
		return respondError(c, "Failed to list clusters", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(clusters))
}

// GET /api/v1/clusters/stats
func (h *DashboardHandler) GetClusterStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	var filter *domain.UserFilter
	if h.settings.ShowFilterPanel && hasFilterParams(c) {
		q, err := h.bindFilterQuery(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		f, err := h.toFilter(ctx, c, q)
		if err != nil {
			return respondError(c, "Failed to aggregate clusters", err)
		}
		filter = &f
	}

	stats, err := h.service.ClusterStats(ctx, filter)
	if err != nil {
		return respondError(c, "Failed to aggregate clusters", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(newClusterStatViews(stats)))
}

// GET /api/v1/recommendations?cluster=Le+power+user
func (h *DashboardHandler) GetRecommendation(c echo.Context) error {
	var q RecommendationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(RecommendationView{
		Cluster:        q.Cluster,
		Recommendation: h.service.Recommend(q.Cluster),
	}))
}

// GET /api/v1/personas
func (h *DashboardHandler) GetPersonas(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.service.Personas()))
}

func (h *DashboardHandler) bindFilterQuery(c echo.Context) (FilterQuery, error) {
	q := FilterQuery{Min: 0, Max: 1}
	err := echo.QueryParamsBinder(c).
		Strings("label", &q.Labels).
		Float64("min", &q.Min).
		Float64("max", &q.Max).
		BindError()
	if err != nil {
		return q, err
	}
	if err := h.validate.Struct(&q); err != nil {
		return q, err
	}
	return q, nil
}

// toFilter builds the filter; without any label param it covers every
// cluster present in the dataset, like the panel's default selection.
func (h *DashboardHandler) toFilter(ctx context.Context, c echo.Context, q FilterQuery) (domain.UserFilter, error) {
	if _, given := c.QueryParams()["label"]; !given {
		clusters, err := h.service.Clusters(ctx)
		if err != nil {
			return domain.UserFilter{}, err
		}
		q.Labels = clusters
	}

	return domain.UserFilter{Labels: q.Labels, MinScore: q.Min, MaxScore: q.Max}, nil
}

func hasFilterParams(c echo.Context) bool {
	params := c.QueryParams()
	for _, key := range []string{"label", "min", "max"} {
		if _, ok := params[key]; ok {
			return true
		}
	}
	return false
}
