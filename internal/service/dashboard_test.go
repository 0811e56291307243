package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/schoolsite-ui/internal/domain/api"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
	"github.com/target/schoolsite-ui/internal/mocks"
)

func newDashboard(client *mocks.MockAPIClient) *DashboardService {
	return NewDashboardService(DashboardServiceOptions{
		Pages:    NewPageRepository(client),
		News:     NewNewsRepository(client),
		Gallery:  NewGalleryRepository(client),
		Messages: NewMessageRepository(client),
	})
}

func listResponse(n int) *api.Response {
	body := []byte("[")
	for i := range n {
		if i > 0 {
			body = append(body, ',')
		}
		body = append(body, []byte(`{"_id":"x"}`)...)
	}
	return &api.Response{Status: http.StatusOK, Body: append(body, ']')}
}

func TestDashboardService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockAPIClient(ctrl)

	counts := map[string]int{"/admin/pages": 2, "/admin/news": 5, "/admin/gallery": 7, "/admin/messages": 1}
	client.EXPECT().Send(gomock.Any(), gomock.Any()).Times(4).DoAndReturn(
		func(_ context.Context, req api.Request) (*api.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			return listResponse(counts[req.Path]), nil
		})

	stats, err := newDashboard(client).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Pages)
	assert.Equal(t, 5, stats.News)
	assert.Equal(t, 7, stats.Gallery)
	assert.Equal(t, 1, stats.Messages)
}

func TestDashboardService_StatsAllOrNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockAPIClient(ctrl)

	boom := apperrors.Upstream(http.StatusInternalServerError, "gallery service down")
	client.EXPECT().Send(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context, req api.Request) (*api.Response, error) {
			if req.Path == "/admin/gallery" {
				return nil, boom
			}
			return listResponse(3), nil
		})

	stats, err := newDashboard(client).Stats(context.Background())
	require.Error(t, err)
	assert.Nil(t, stats, "partial counts must never be returned")
	assert.True(t, errors.Is(err, boom))
}

func TestDashboardService_StatsAgainstBackend(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("GET /admin/pages", http.StatusOK, []any{map[string]string{"_id": "p"}})
	env.be.JSON("GET /admin/news", http.StatusOK, []any{})
	env.be.JSON("GET /admin/gallery", http.StatusOK, []any{})
	env.be.JSON("GET /admin/messages", http.StatusUnauthorized, map[string]string{"message": "jwt expired"})

	svc := NewDashboardService(DashboardServiceOptions{
		Pages:    NewPageRepository(env.admin),
		News:     NewNewsRepository(env.admin),
		Gallery:  NewGalleryRepository(env.admin),
		Messages: NewMessageRepository(env.admin),
	})
	ctx := env.signedIn(t, "stale")

	stats, err := svc.Stats(ctx)
	assert.Nil(t, stats)
	assert.True(t, apperrors.IsUnauthorized(err))
	_, ok := env.sessions.Get(ctx)
	assert.False(t, ok)
}

func TestDashboardService_StatsEndedSessionWinsOverOtherFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockAPIClient(ctrl)

	client.EXPECT().Send(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(ctx context.Context, req api.Request) (*api.Response, error) {
			switch req.Path {
			case "/admin/pages":
				return nil, apperrors.Upstream(http.StatusInternalServerError, "")
			case "/admin/news":
				// Answers only after the pages failure has been recorded first.
				<-ctx.Done()
				return nil, apperrors.ErrUnauthorized
			default:
				return listResponse(1), nil
			}
		})

	stats, err := newDashboard(client).Stats(context.Background())

	require.Error(t, err)
	assert.Nil(t, stats)
	assert.True(t, apperrors.IsUnauthorized(err))
}
