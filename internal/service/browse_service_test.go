package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/catalog"
	"github.com/noah-isme/studyabroad-api/internal/models"
	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
	"github.com/noah-isme/studyabroad-api/pkg/listing"
)

func seedBlogs(n int) []models.Blog {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	blogs := make([]models.Blog, 0, n)
	for i := 0; i < n; i++ {
		category := "Scholarships"
		if i%2 == 1 {
			category = "Student Visas"
		}
		blogs = append(blogs, models.Blog{
			ID:              fmt.Sprintf("b%d", i+1),
			Title:           fmt.Sprintf("Post %d", i+1),
			Slug:            fmt.Sprintf("post-%d", i+1),
			Category:        category,
			ReadTimeMinutes: i + 1,
			PublishedAt:     base.AddDate(0, 0, i),
		})
	}
	return blogs
}

func newBrowseFixture(t *testing.T) (*BrowseService, *memRepo[models.Blog], *memCacheRepo) {
	t.Helper()
	blogs := newBlogRepo(seedBlogs(8)...)
	courses := newCourseRepo(
		models.Course{ID: "k1", Title: "MBA", Category: "Business", Duration: "2 Years", PopularIn: []string{"USA", "UK"}},
		models.Course{ID: "k2", Title: "Computer Science", Category: "Technology", Duration: "4 Years", PopularIn: []string{"Canada"}},
		models.Course{ID: "k3", Title: "Business Analytics", Category: "Technology", Duration: "1 Year", PopularIn: []string{"USA"}},
	)
	universities := newUniversityRepo(
		models.University{ID: "u1", Name: "University of Toronto", Country: "Canada", IsFeatured: true},
		models.University{ID: "u2", Name: "UBC", Country: "Canada"},
		models.University{ID: "u3", Name: "Oxford", Country: "United Kingdom", IsFeatured: true},
	)
	cacheRepo := &memCacheRepo{}
	metrics := NewMetricsService()
	svc := NewBrowseService(BrowseSources{
		Blogs:        listing.FetcherFunc[models.Blog](blogs.ListActive),
		Courses:      listing.FetcherFunc[models.Course](courses.ListActive),
		Universities: listing.FetcherFunc[models.University](universities.ListActive),
	}, newTestCache(cacheRepo), metrics, 0, zap.NewNop())
	return svc, blogs, cacheRepo
}

func TestBrowseDefaultsToNewestFirst(t *testing.T) {
	svc, blogs, _ := newBrowseFixture(t)

	res, err := svc.Browse(context.Background(), "blogs", BrowseQuery{Page: 1})
	require.NoError(t, err)
	items := res.Items.([]models.Blog)
	require.Len(t, items, listing.DefaultPageSize)
	assert.Equal(t, "b8", items[0].ID)
	assert.Equal(t, "b3", items[5].ID)
	assert.Equal(t, 8, res.Pagination.TotalCount)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.Equal(t, catalog.SortDateDesc, res.Meta.Sort)
	assert.Equal(t, catalog.AllBlogTopics, res.Meta.Category)
	assert.False(t, res.Meta.CacheHit)
	assert.Equal(t, 1, blogs.lists)

	again, err := svc.Browse(context.Background(), "blogs", BrowseQuery{Page: 2})
	require.NoError(t, err)
	assert.True(t, again.Meta.CacheHit)
	assert.Equal(t, 1, blogs.lists)
	assert.Len(t, again.Items.([]models.Blog), 2)
}

func TestBrowseClampsPage(t *testing.T) {
	svc, _, _ := newBrowseFixture(t)

	res, err := svc.Browse(context.Background(), "blogs", BrowseQuery{Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pagination.Page)
	assert.Len(t, res.Items.([]models.Blog), 2)
}

func TestBrowseCategoryAndSort(t *testing.T) {
	svc, _, _ := newBrowseFixture(t)

	res, err := svc.Browse(context.Background(), "blogs", BrowseQuery{Category: "Student Visas", Sort: string(catalog.SortReadTimeAsc)})
	require.NoError(t, err)
	items := res.Items.([]models.Blog)
	require.Len(t, items, 4)
	assert.Equal(t, []string{"b2", "b4", "b6", "b8"}, blogIDs(items))
}

func TestBrowseDateRangeIsInclusive(t *testing.T) {
	svc, _, _ := newBrowseFixture(t)

	res, err := svc.Browse(context.Background(), "blogs", BrowseQuery{From: "2024-01-02", To: "2024-01-04", Sort: string(catalog.SortDateAsc)})
	require.NoError(t, err)
	assert.Equal(t, []string{"b2", "b3", "b4"}, blogIDs(res.Items.([]models.Blog)))
	assert.Contains(t, res.Meta.Filters, catalog.FilterDateRange)

	open, err := svc.Browse(context.Background(), "blogs", BrowseQuery{From: "2024-01-07"})
	require.NoError(t, err)
	assert.Equal(t, 2, open.Pagination.TotalCount)
}

func TestBrowseRejectsBadDates(t *testing.T) {
	svc, _, _ := newBrowseFixture(t)

	_, err := svc.Browse(context.Background(), "blogs", BrowseQuery{From: "01/02/2024"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Browse(context.Background(), "blogs", BrowseQuery{From: "2024-02-01", To: "2024-01-01"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBrowseCourseFilters(t *testing.T) {
	svc, _, _ := newBrowseFixture(t)

	res, err := svc.Browse(context.Background(), "courses", BrowseQuery{Search: "business"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pagination.TotalCount)
	items := res.Items.([]models.Course)
	assert.Equal(t, "Business Analytics", items[0].Title)

	res, err = svc.Browse(context.Background(), "courses", BrowseQuery{Filters: map[string]string{"duration": "years", "location": "usa"}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Pagination.TotalCount)

	res, err = svc.Browse(context.Background(), "courses", BrowseQuery{Filters: map[string]string{"duration": "Years", "location": "usa", "ignored": "x"}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Pagination.TotalCount)
	assert.Equal(t, "k1", res.Items.([]models.Course)[0].ID)
	assert.NotContains(t, res.Meta.Filters, "ignored")
}

func TestBrowseUniversitiesByCountry(t *testing.T) {
	svc, _, _ := newBrowseFixture(t)

	res, err := svc.Browse(context.Background(), "Universities", BrowseQuery{Filters: map[string]string{"country": "Canada", "featured": "true"}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Pagination.TotalCount)
	assert.Equal(t, "u1", res.Items.([]models.University)[0].ID)
	assert.Equal(t, "Canada", res.Meta.Category)
	assert.Contains(t, res.Meta.Categories, catalog.AllCountries)
}

func TestBrowseUnknownListing(t *testing.T) {
	svc, _, _ := newBrowseFixture(t)

	_, err := svc.Browse(context.Background(), "scholarships", BrowseQuery{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnknownListing.Code, appErrors.FromError(err).Code)

	_, err = svc.Browse(context.Background(), "exams", BrowseQuery{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnknownListing.Code, appErrors.FromError(err).Code)
	assert.Equal(t, []catalog.Kind{catalog.KindCourses, catalog.KindBlogs, catalog.KindUniversities}, svc.Kinds())
}

func TestBrowseSourceFailure(t *testing.T) {
	svc, blogs, _ := newBrowseFixture(t)
	blogs.listErr = errors.New("db down")

	_, err := svc.Browse(context.Background(), "blogs", BrowseQuery{})
	require.Error(t, err)
}

func TestBrowseAfterInvalidationReloads(t *testing.T) {
	svc, blogs, cacheRepo := newBrowseFixture(t)
	cache := newTestCache(cacheRepo)

	_, err := svc.Browse(context.Background(), "blogs", BrowseQuery{})
	require.NoError(t, err)
	require.NoError(t, cache.InvalidateListing(context.Background(), "blogs"))

	res, err := svc.Browse(context.Background(), "blogs", BrowseQuery{})
	require.NoError(t, err)
	assert.False(t, res.Meta.CacheHit)
	assert.Equal(t, 2, blogs.lists)
}

func blogIDs(items []models.Blog) []string {
	ids := make([]string, 0, len(items))
	for _, b := range items {
		ids = append(ids, b.ID)
	}
	return ids
}
