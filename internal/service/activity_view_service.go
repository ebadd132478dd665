package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Esmaay/atlas-activity/internal/atlas"
	"github.com/Esmaay/atlas-activity/internal/dto"
	"github.com/Esmaay/atlas-activity/internal/observability"
	"github.com/Esmaay/atlas-activity/internal/presenter"
)

const groupCacheKey = "activities:groups:v1"

// ActivityViewService assembles presented, paginated activity pages from the
// upstream Atlas API.
type ActivityViewService interface {
	ListPage(ctx context.Context, req dto.ActivityPageRequest) (dto.ActivityPageResponse, error)
	Groups(ctx context.Context) (dto.GroupListResponse, error)
}

type activityViewService struct {
	client          atlas.Client
	cache           *redis.Client
	pageTTL         time.Duration
	groupTTL        time.Duration
	defaultPageSize int
	logger          zerolog.Logger
	tracer          trace.Tracer
}

// NewActivityViewService builds the activity view service. The redis client
// is optional; a nil client disables caching.
func NewActivityViewService(client atlas.Client, cache *redis.Client, pageTTL, groupTTL time.Duration, defaultPageSize int, logger zerolog.Logger) ActivityViewService {
	if pageTTL <= 0 {
		// Pages embed relative timestamps, so the cache stays short-lived.
		pageTTL = 30 * time.Second
	}
	if groupTTL <= 0 {
		groupTTL = 5 * time.Minute
	}
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	return &activityViewService{
		client:          client,
		cache:           cache,
		pageTTL:         pageTTL,
		groupTTL:        groupTTL,
		defaultPageSize: defaultPageSize,
		logger:          logger.With().Str("component", "activity_view_service").Logger(),
		tracer:          otel.Tracer("github.com/Esmaay/atlas-activity/internal/service/activity_view"),
	}
}

func (s *activityViewService) ListPage(ctx context.Context, req dto.ActivityPageRequest) (dto.ActivityPageResponse, error) {
	ctx, span := s.tracer.Start(ctx, "activity.list_page")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.ActivityPageLatency().Observe(time.Since(start).Seconds())
	}()

	page := maxInt(req.Page, 1)
	pageSize := s.clampPageSize(req.PageSize)
	span.SetAttributes(attribute.Int("activity.page", page), attribute.Int("activity.page_size", pageSize))

	cacheKey := fmt.Sprintf("activities:page:v1:%d:%d", page, pageSize)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.ActivityPageResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				observability.ActivityPageRequests().WithLabelValues("hit").Inc()
				return response, nil
			}
		}
	}

	offset := (page - 1) * pageSize

	// The group list and the activity page are independent upstream calls,
	// issued concurrently.
	var (
		wg        sync.WaitGroup
		groups    []atlas.Group
		groupsErr error
		entries   []atlas.Activity
		fetchErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		groups, groupsErr = s.groupList(ctx)
	}()
	go func() {
		defer wg.Done()
		// One extra item decides whether a further page exists, independent
		// of how many rows the backup filter removes below.
		entries, fetchErr = s.client.RecentActivities(ctx, pageSize+1, offset)
	}()
	wg.Wait()

	if fetchErr != nil {
		span.RecordError(fetchErr)
		span.SetStatus(codes.Error, "upstream fetch failed")
		observability.ActivityPageRequests().WithLabelValues("error").Inc()
		return dto.ActivityPageResponse{}, fmt.Errorf("fetch recent activities: %w", fetchErr)
	}

	if groupsErr != nil {
		// Group resolution is decoration only; fall back to raw names.
		span.RecordError(groupsErr)
		s.logger.Warn().Err(groupsErr).Msg("group list unavailable, using raw group names")
		groups = nil
	}

	hasNext := len(entries) > pageSize
	if hasNext {
		entries = entries[:pageSize]
	}

	items := make([]dto.ActivityRow, 0, len(entries))
	for _, entry := range entries {
		if entry.ActivityType == atlas.TypeBackupOperation {
			continue
		}
		items = append(items, buildRow(entry, groups))
	}

	response := dto.ActivityPageResponse{
		Items:       items,
		Page:        page,
		PageSize:    pageSize,
		HasPrevPage: page > 1,
		HasNextPage: hasNext,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.pageTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write activity page cache")
			}
		}
	}

	observability.ActivityPageRequests().WithLabelValues("miss").Inc()

	return response, nil
}

func (s *activityViewService) Groups(ctx context.Context) (dto.GroupListResponse, error) {
	ctx, span := s.tracer.Start(ctx, "activity.groups")
	defer span.End()

	groups, err := s.groupList(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "group fetch failed")
		return dto.GroupListResponse{}, fmt.Errorf("fetch groups: %w", err)
	}

	items := make([]dto.GroupView, 0, len(groups))
	for _, group := range groups {
		items = append(items, dto.GroupView{
			Name:        group.Name,
			DisplayName: group.DisplayName,
			Color:       presenter.ColorFor(group.Name),
		})
	}

	return dto.GroupListResponse{Items: items}, nil
}

func (s *activityViewService) groupList(ctx context.Context) ([]atlas.Group, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, groupCacheKey).Result(); err == nil && cached != "" {
			var groups []atlas.Group
			if err := json.Unmarshal([]byte(cached), &groups); err == nil {
				return groups, nil
			}
		}
	}

	groups, err := s.client.GroupList(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(groups); err == nil {
			if err := s.cache.Set(ctx, groupCacheKey, payload, s.groupTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write group cache")
			}
		}
	}

	return groups, nil
}

func buildRow(entry atlas.Activity, groups []atlas.Group) dto.ActivityRow {
	presentation := presenter.Present(entry)
	internalName := presenter.ResolveInternalName(entry.GroupName, groups)

	row := dto.ActivityRow{
		ID:               entry.ID,
		Type:             entry.ActivityType,
		Icon:             string(presenter.IconFor(entry)),
		Summary:          presentation.Summary,
		Details:          presentation.Details,
		TimeAgo:          presenter.FormatTimeAgo(entry.Timestamp),
		Timestamp:        entry.Timestamp,
		GroupName:        internalName,
		GroupDisplayName: entry.GroupName,
		GroupColor:       presenter.ColorFor(internalName),
		TriggeredBy:      entry.TriggeredBy,
		Description:      entry.Description,
	}

	if presentation.Badge != "" {
		row.Badge = &dto.BadgeView{
			Text: presentation.Badge,
			Tone: string(presenter.BadgeTone(presentation.Badge)),
		}
	}

	return row
}

func (s *activityViewService) clampPageSize(size int) int {
	if size <= 0 {
		return s.defaultPageSize
	}
	if size > 100 {
		return 100
	}
	return size
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
