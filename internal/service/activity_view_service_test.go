package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Esmaay/atlas-activity/internal/atlas"
	"github.com/Esmaay/atlas-activity/internal/dto"
)

type stubAtlasClient struct {
	groups        []atlas.Group
	groupsErr     error
	activities    []atlas.Activity
	activitiesErr error
	lastLimit     int
	lastOffset    int
	fetchCalls    int
}

func (c *stubAtlasClient) GroupList(ctx context.Context) ([]atlas.Group, error) {
	if c.groupsErr != nil {
		return nil, c.groupsErr
	}
	return c.groups, nil
}

func (c *stubAtlasClient) RecentActivities(ctx context.Context, limit, offset int) ([]atlas.Activity, error) {
	c.fetchCalls++
	c.lastLimit = limit
	c.lastOffset = offset
	if c.activitiesErr != nil {
		return nil, c.activitiesErr
	}
	if limit > len(c.activities) {
		limit = len(c.activities)
	}
	return c.activities[:limit], nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func scalingActivity(id string) atlas.Activity {
	return atlas.Activity{
		ID:           id,
		ActivityType: atlas.TypeScalingOperation,
		Metadata: map[string]interface{}{
			"servers_before": 3,
			"servers_after":  5,
			"direction":      "up",
			"reason":         "scale_up_threshold",
		},
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		GroupName:   "Lobby Servers",
		TriggeredBy: "autoscaler",
	}
}

func manyActivities(n int) []atlas.Activity {
	activities := make([]atlas.Activity, 0, n)
	for i := 0; i < n; i++ {
		activities = append(activities, scalingActivity(fmt.Sprintf("act-%d", i)))
	}
	return activities
}

func TestListPageLookAheadDrivesNextPage(t *testing.T) {
	client := &stubAtlasClient{activities: manyActivities(25)}
	svc := NewActivityViewService(client, nil, time.Minute, time.Minute, 20, testLogger())

	resp, err := svc.ListPage(context.Background(), dto.ActivityPageRequest{Page: 1})
	require.NoError(t, err)
	require.Equal(t, 21, client.lastLimit)
	require.Equal(t, 0, client.lastOffset)
	require.Len(t, resp.Items, 20)
	require.True(t, resp.HasNextPage)
	require.False(t, resp.HasPrevPage)
}

func TestListPageLastPage(t *testing.T) {
	client := &stubAtlasClient{activities: manyActivities(5)}
	svc := NewActivityViewService(client, nil, time.Minute, time.Minute, 20, testLogger())

	resp, err := svc.ListPage(context.Background(), dto.ActivityPageRequest{Page: 2})
	require.NoError(t, err)
	require.Equal(t, 20, client.lastOffset)
	require.False(t, resp.HasNextPage)
	require.True(t, resp.HasPrevPage)
	require.Equal(t, 2, resp.Page)
}

func TestListPageFiltersBackupOperations(t *testing.T) {
	activities := []atlas.Activity{
		scalingActivity("act-1"),
		{ID: "backup-1", ActivityType: atlas.TypeBackupOperation, Metadata: map[string]interface{}{}},
		scalingActivity("act-2"),
		{ID: "backup-2", ActivityType: atlas.TypeBackupOperation, Metadata: map[string]interface{}{}},
	}
	client := &stubAtlasClient{activities: activities}
	svc := NewActivityViewService(client, nil, time.Minute, time.Minute, 20, testLogger())

	resp, err := svc.ListPage(context.Background(), dto.ActivityPageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	for _, item := range resp.Items {
		require.NotEqual(t, atlas.TypeBackupOperation, item.Type)
	}
	// A short upstream page means end of data regardless of filtering.
	require.False(t, resp.HasNextPage)
}

func TestListPagePresentsRows(t *testing.T) {
	client := &stubAtlasClient{
		activities: []atlas.Activity{scalingActivity("act-1")},
		groups:     []atlas.Group{{Name: "lobby", DisplayName: "Lobby Servers"}},
	}
	svc := NewActivityViewService(client, nil, time.Minute, time.Minute, 20, testLogger())

	resp, err := svc.ListPage(context.Background(), dto.ActivityPageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	row := resp.Items[0]
	require.Equal(t, "3 → 5 servers", row.Summary)
	require.Equal(t, "High utilization", row.Details)
	require.Equal(t, "scale-up", row.Icon)
	require.NotNil(t, row.Badge)
	require.Equal(t, "+2", row.Badge.Text)
	require.Equal(t, "positive", row.Badge.Tone)
	require.Equal(t, "lobby", row.GroupName)
	require.Equal(t, "Lobby Servers", row.GroupDisplayName)
	require.NotEmpty(t, row.GroupColor)
	require.Equal(t, "now", row.TimeAgo)
}

func TestListPageGroupFailureDegradesToRawNames(t *testing.T) {
	client := &stubAtlasClient{
		activities: []atlas.Activity{scalingActivity("act-1")},
		groupsErr:  fmt.Errorf("groups unavailable"),
	}
	svc := NewActivityViewService(client, nil, time.Minute, time.Minute, 20, testLogger())

	resp, err := svc.ListPage(context.Background(), dto.ActivityPageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "Lobby Servers", resp.Items[0].GroupName)
}

func TestListPageUpstreamError(t *testing.T) {
	client := &stubAtlasClient{activitiesErr: fmt.Errorf("connection refused")}
	svc := NewActivityViewService(client, nil, time.Minute, time.Minute, 20, testLogger())

	_, err := svc.ListPage(context.Background(), dto.ActivityPageRequest{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "fetch recent activities")
}

func TestListPageCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	client := &stubAtlasClient{activities: []atlas.Activity{scalingActivity("act-1")}}
	svc := NewActivityViewService(client, redisClient, time.Minute, time.Minute, 20, testLogger())

	resp, err := svc.ListPage(context.Background(), dto.ActivityPageRequest{Page: 1})
	require.NoError(t, err)
	require.False(t, resp.CacheHit)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 1, client.fetchCalls)

	// mutate the upstream to prove the second read is served from cache
	client.activities = nil

	cached, err := svc.ListPage(context.Background(), dto.ActivityPageRequest{Page: 1})
	require.NoError(t, err)
	require.True(t, cached.CacheHit)
	require.Len(t, cached.Items, 1)
	require.Equal(t, 1, client.fetchCalls)
}

func TestGroupsResponseCarriesColors(t *testing.T) {
	client := &stubAtlasClient{groups: []atlas.Group{
		{Name: "lobby", DisplayName: "Lobby Servers"},
		{Name: "bedwars", DisplayName: "Bedwars"},
	}}
	svc := NewActivityViewService(client, nil, time.Minute, time.Minute, 20, testLogger())

	resp, err := svc.Groups(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	require.Equal(t, "lobby", resp.Items[0].Name)
	require.NotEmpty(t, resp.Items[0].Color)
}

func TestGroupsUpstreamError(t *testing.T) {
	client := &stubAtlasClient{groupsErr: fmt.Errorf("connection refused")}
	svc := NewActivityViewService(client, nil, time.Minute, time.Minute, 20, testLogger())

	_, err := svc.Groups(context.Background())
	require.Error(t, err)
}

func TestClampPageSize(t *testing.T) {
	client := &stubAtlasClient{activities: manyActivities(5)}
	svc := NewActivityViewService(client, nil, time.Minute, time.Minute, 20, testLogger())

	resp, err := svc.ListPage(context.Background(), dto.ActivityPageRequest{PageSize: 500})
	require.NoError(t, err)
	require.Equal(t, 100, resp.PageSize)
	require.Equal(t, 101, client.lastLimit)

	resp, err = svc.ListPage(context.Background(), dto.ActivityPageRequest{PageSize: 5})
	require.NoError(t, err)
	require.Equal(t, 5, resp.PageSize)
}
