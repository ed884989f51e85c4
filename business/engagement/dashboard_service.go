package engagement

import (
	"context"
	"fmt"

	"engagementReco/domain"
	"engagementReco/pkg/logger"
)

// DatasetProvider hands out the derived, cached user table.
type DatasetProvider interface {
	Get(ctx context.Context) ([]domain.UserRecord, error)
	Reload(ctx context.Context) ([]domain.UserRecord, error)
	Info() domain.DatasetInfo
}

type RecommendationResolver interface {
	Resolve(label string) string
	Personas() []domain.Persona
}

type DashboardService struct {
	dataset  DatasetProvider
	resolver RecommendationResolver
}

func NewDashboardService(dataset DatasetProvider, resolver RecommendationResolver) *DashboardService {
	return &DashboardService{
		dataset:  dataset,
		resolver: resolver,
	}
}

func (s *DashboardService) Users(ctx context.Context) ([]domain.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	rows, err := s.dataset.Get(ctx)
	if err != nil {
		logger.Error("Failed to load dataset", err)
		return nil, err
	}

	return rows, nil
}

// VisitorIDs lists distinct visitor ids in dataset order.
func (s *DashboardService) VisitorIDs(ctx context.Context) ([]string, error) {
	rows, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}

	return distinct(rows, func(r domain.UserRecord) string { return r.VisitorID }), nil
}

// Clusters lists distinct cluster labels in dataset order.
func (s *DashboardService) Clusters(ctx context.Context) ([]string, error) {
	rows, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}

	return distinct(rows, func(r domain.UserRecord) string { return r.ClusterLabel }), nil
}

// UserProfile returns the first row for visitorID with its recommendation.
func (s *DashboardService) UserProfile(ctx context.Context, visitorID string) (domain.UserProfile, error) {
	rows, err := s.Users(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}

	for _, r := range rows {
		if r.VisitorID == visitorID {
			return domain.UserProfile{
				User:           r,
				Recommendation: s.resolver.Resolve(r.ClusterLabel),
			}, nil
		}
	}

	return domain.UserProfile{}, fmt.Errorf("visitor %q: %w", visitorID, domain.ErrUserNotFound)
}

func (s *DashboardService) FilterUsers(ctx context.Context, filter domain.UserFilter) ([]domain.UserRecord, error) {
	rows, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}

	return Filter(rows, filter), nil
}

// ClusterStats aggregates the whole table, or only the rows matching filter when it is non-nil.
func (s *DashboardService) ClusterStats(ctx context.Context, filter *domain.UserFilter) ([]domain.ClusterStat, error) {
	rows, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}

	if filter != nil {
		rows = Filter(rows, *filter)
	}

	return ClusterStats(rows), nil
}

func (s *DashboardService) Recommend(label string) string {
	return s.resolver.Resolve(label)
}

func (s *DashboardService) Personas() []domain.Persona {
	return s.resolver.Personas()
}

func (s *DashboardService) DatasetInfo() domain.DatasetInfo {
	return s.dataset.Info()
}

// Reload re-reads the dataset file. On failure the previously cached table stays in place.
func (s *DashboardService) Reload(ctx context.Context) (domain.DatasetInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.DatasetInfo{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.dataset.Reload(ctx); err != nil {
		logger.Error("Failed to reload dataset", err)
		return s.dataset.Info(), err
	}

	info := s.dataset.Info()
	logger.Info("Dataset reloaded", "rows", info.Rows, "generation", info.Generation)

	return info, nil
}

func distinct(rows []domain.UserRecord, key func(domain.UserRecord) string) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0)
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
