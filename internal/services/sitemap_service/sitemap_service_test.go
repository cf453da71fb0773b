package services

import (
	"context"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/handlers/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPostSource struct {
	mock.Mock
}

func (m *MockPostSource) PublicSlugs(ctx context.Context) ([]models.BlogPost, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.BlogPost), args.Error(1)
}

func TestSitemapService_Build(t *testing.T) {
	ctx := context.Background()
	posts := new(MockPostSource)
	s := NewSitemapService(slogdiscard.NewDiscardLogger(), "https://sweetcrumb.test/", posts)
	s.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }

	posts.On("PublicSlugs", ctx).Return([]models.BlogPost{
		{Slug: "sourdough-basics", UpdatedAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)},
	}, nil).Once()

	body, err := s.Build(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), xml.Header))

	var set URLSet
	require.NoError(t, xml.Unmarshal(body, &set))
	require.Len(t, set.URLs, len(staticPages)+1)

	assert.Equal(t, "https://sweetcrumb.test/", set.URLs[0].Loc)
	assert.Equal(t, "2024-03-09", set.URLs[0].LastMod)

	last := set.URLs[len(set.URLs)-1]
	assert.Equal(t, "https://sweetcrumb.test/blog/sourdough-basics", last.Loc)
	assert.Equal(t, "2024-02-01", last.LastMod)
}

func TestSitemapService_BuildError(t *testing.T) {
	ctx := context.Background()
	posts := new(MockPostSource)
	s := NewSitemapService(slogdiscard.NewDiscardLogger(), "https://sweetcrumb.test", posts)

	posts.On("PublicSlugs", ctx).Return([]models.BlogPost(nil), errors.New("db down")).Once()

	_, err := s.Build(ctx)
	assert.Error(t, err)
}
