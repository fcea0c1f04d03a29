package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyabroad-api/internal/middleware"
	"github.com/noah-isme/studyabroad-api/internal/models"
	"github.com/noah-isme/studyabroad-api/internal/service"
	"github.com/noah-isme/studyabroad-api/pkg/response"
)

// browseParams are the query keys that are not listing filters.
var browseParams = map[string]bool{"search": true, "category": true, "sort": true, "page": true, "from": true, "to": true}

type browseService interface {
	Browse(ctx context.Context, name string, q service.BrowseQuery) (*service.BrowseResult, error)
}

type countryLister interface {
	Countries() []models.Country
}

// BrowseHandler serves paged, filtered and sorted catalog listings.
type BrowseHandler struct {
	browse    browseService
	countries countryLister
}

// NewBrowseHandler constructs a BrowseHandler.
func NewBrowseHandler(browse browseService, countries countryLister) *BrowseHandler {
	return &BrowseHandler{browse: browse, countries: countries}
}

// Browse godoc
// @Summary Browse a catalog listing
// @Description Search, category, filters, sort and a fixed-size page window over colleges, courses, blogs, universities or exams
// @Tags Browse
// @Produce json
// @Param type path string true "Listing type"
// @Param search query string false "Free-text search"
// @Param category query string false "Category"
// @Param sort query string false "Sort option, e.g. date-desc"
// @Param page query int false "Page (clamped)"
// @Param location query string false "Location filter"
// @Param duration query string false "Course duration filter"
// @Param from query string false "Earliest publication date (YYYY-MM-DD)"
// @Param to query string false "Latest publication date (YYYY-MM-DD)"
// @Param country query string false "University country"
// @Param featured query bool false "Featured universities only"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /browse/{type} [get]
func (h *BrowseHandler) Browse(c *gin.Context) {
	q := service.BrowseQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Page:     intQuery(c, "page", 1),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Filters:  map[string]string{},
	}
	for key, values := range c.Request.URL.Query() {
		if browseParams[key] || len(values) == 0 {
			continue
		}
		q.Filters[key] = values[0]
	}

	result, err := h.browse.Browse(c.Request.Context(), c.Param("type"), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, result.Meta.CacheHit)
	meta := map[string]interface{}{}
	for k, v := range middleware.ExtractMeta(c) {
		meta[k] = v
	}
	meta["listing"] = result.Meta.Listing
	meta["search"] = result.Meta.Search
	meta["category"] = result.Meta.Category
	meta["categories"] = result.Meta.Categories
	meta["sort"] = result.Meta.Sort
	meta["sort_options"] = result.Meta.SortOptions
	meta["filters"] = result.Meta.Filters
	meta["filter_keys"] = result.Meta.FilterKeys
	meta["cache_hit"] = result.Meta.CacheHit

	response.JSON(c, http.StatusOK, result.Items, result.Pagination, meta)
}

// Countries godoc
// @Summary List destination countries
// @Tags Browse
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /countries [get]
func (h *BrowseHandler) Countries(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.countries.Countries(), nil)
}
