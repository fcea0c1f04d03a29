package listing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type post struct {
	ID       string
	Title    string
	Category string
	Author   string
	Date     time.Time
	Minutes  int
	Location string
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func postConfig() *Config[post] {
	return &Config[post]{
		Name:        "posts",
		PageSize:    6,
		Categories:  []string{"All Topics", "Visas", "Scholarships"},
		AllCategory: "All Topics",
		CategoryOf:  func(p post) string { return p.Category },
		SearchFields: func(p post) []string {
			return []string{p.Title, p.Category, p.Author}
		},
		Filters: map[string]Predicate[post]{
			"location":  Contains(func(p post) string { return p.Location }),
			"dateRange": Within(func(p post) time.Time { return p.Date }),
		},
		Sorts: map[SortOption]Comparator[post]{
			"date-desc":      ByTime(func(p post) time.Time { return p.Date }, true),
			"date-asc":       ByTime(func(p post) time.Time { return p.Date }, false),
			"title-asc":      ByText(func(p post) string { return p.Title }, false),
			"title-desc":     ByText(func(p post) string { return p.Title }, true),
			"read-time-asc":  ByInt(func(p post) int { return p.Minutes }, false),
			"read-time-desc": ByInt(func(p post) int { return p.Minutes }, true),
		},
		SortOptions: []SortOption{"date-desc", "date-asc", "title-asc", "title-desc", "read-time-asc", "read-time-desc"},
		DefaultSort: "date-desc",
	}
}

func samplePosts() []post {
	return []post{
		{ID: "1", Title: "Study in Canada", Category: "Visas", Author: "Ana", Date: day("2024-01-05"), Minutes: 5, Location: "Toronto"},
		{ID: "2", Title: "Scholarships 101", Category: "Scholarships", Author: "Ben", Date: day("2024-02-01"), Minutes: 8, Location: "London"},
		{ID: "3", Title: "Visa interview tips", Category: "Visas", Author: "Cara", Date: day("2024-01-20"), Minutes: 5, Location: "Vancouver"},
		{ID: "4", Title: "Life in Berlin", Category: "Scholarships", Author: "Dan", Date: day("2023-12-11"), Minutes: 3, Location: "Berlin"},
		{ID: "5", Title: "applying early", Category: "Visas", Author: "Eve", Date: day("2024-01-05"), Minutes: 12, Location: "Toronto"},
	}
}

func ids(items []post) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestScenarioDateDescending(t *testing.T) {
	cfg := postConfig()
	items := []post{
		{ID: "B", Title: "B", Date: day("2024-01-02")},
		{ID: "A", Title: "A", Date: day("2024-01-01")},
	}
	ctl := New(cfg)
	ctl.SetItems(items)
	ctl.SetSort("date-desc")
	assert.Equal(t, []string{"B", "A"}, ids(ctl.State().Filtered))
}

func TestScenarioLastPageWindow(t *testing.T) {
	items := make([]post, 14)
	for i := range items {
		items[i] = post{ID: fmt.Sprintf("%02d", i)}
	}
	assert.Equal(t, 3, TotalPages(len(items), 6))
	window := Window(items, 3, 6)
	require.Len(t, window, 2)
	assert.Equal(t, []string{"12", "13"}, ids(window))
}

func TestScenarioSearchIgnoresCase(t *testing.T) {
	cfg := postConfig()
	item := post{ID: "1", Title: "Study in Canada"}
	assert.True(t, Matches(cfg, item, nil, "canada", ""))
	assert.True(t, Matches(cfg, item, nil, "CANADA", ""))
	assert.False(t, Matches(cfg, item, nil, "germany", ""))
}

func TestScenarioSentinelCategoryKeepsEverything(t *testing.T) {
	cfg := postConfig()
	ctl := New(cfg)
	ctl.SetItems(samplePosts())
	ctl.SetCategory("All Topics")
	assert.Equal(t, len(samplePosts()), ctl.Total())
}

func TestCategoryIsCaseSensitive(t *testing.T) {
	cfg := postConfig()
	ctl := New(cfg)
	ctl.SetItems(samplePosts())
	ctl.SetCategory("visas")
	assert.Equal(t, 0, ctl.Total())
	ctl.SetCategory("Visas")
	assert.Equal(t, 3, ctl.Total())
}

func TestRecomputeIsIdempotent(t *testing.T) {
	cfg := postConfig()
	filters := Filters{"location": Text("o")}
	first := Sort(cfg, Filter(cfg, samplePosts(), filters, "i", "Visas"), "title-asc")
	second := Sort(cfg, Filter(cfg, samplePosts(), filters, "i", "Visas"), "title-asc")
	assert.Equal(t, ids(first), ids(second))
}

func TestFilterMonotonicity(t *testing.T) {
	cfg := postConfig()
	base := Filter(cfg, samplePosts(), Filters{}, "", "")
	withLocation := Filter(cfg, samplePosts(), Filters{"location": Text("toronto")}, "", "")
	withSearch := Filter(cfg, samplePosts(), Filters{"location": Text("toronto")}, "study", "")
	assert.LessOrEqual(t, len(withLocation), len(base))
	assert.LessOrEqual(t, len(withSearch), len(withLocation))
	assert.Equal(t, []string{"1"}, ids(withSearch))
}

func TestSortIsStableForEveryOption(t *testing.T) {
	cfg := postConfig()
	items := []post{
		{ID: "a", Title: "Same", Date: day("2024-01-01"), Minutes: 5},
		{ID: "b", Title: "Same", Date: day("2024-01-01"), Minutes: 5},
		{ID: "c", Title: "Same", Date: day("2024-01-01"), Minutes: 5},
	}
	for _, option := range cfg.SortOptions {
		t.Run(string(option), func(t *testing.T) {
			assert.Equal(t, []string{"a", "b", "c"}, ids(Sort(cfg, items, option)))
		})
	}
}

func TestReadTimeSortUsesStructuredMinutes(t *testing.T) {
	cfg := postConfig()
	sorted := Sort(cfg, samplePosts(), "read-time-desc")
	assert.Equal(t, []string{"5", "2", "1", "3", "4"}, ids(sorted))
}

func TestUnknownSortKeepsOrder(t *testing.T) {
	cfg := postConfig()
	items := samplePosts()
	assert.Equal(t, ids(items), ids(Sort(cfg, items, "popularity")))
	assert.Equal(t, 0, Compare(cfg, items[0], items[1], "popularity"))
}

func TestTitleSortIgnoresCase(t *testing.T) {
	cfg := postConfig()
	sorted := Sort(cfg, samplePosts(), "title-asc")
	assert.Equal(t, "applying early", sorted[0].Title)
}

func TestPaginationCoverage(t *testing.T) {
	for total := 0; total <= 20; total++ {
		items := make([]post, total)
		for i := range items {
			items[i] = post{ID: fmt.Sprint(i)}
		}
		var joined []post
		pages := TotalPages(total, 6)
		for p := 1; p <= pages; p++ {
			joined = append(joined, Window(items, p, 6)...)
		}
		assert.Equal(t, ids(items), ids(joined), "total=%d", total)
	}
}

func TestWindowOutOfRangeIsEmpty(t *testing.T) {
	items := samplePosts()
	assert.Empty(t, Window(items, 4, 6))
	assert.Empty(t, Window(items, 0, 6))
	assert.Empty(t, Window([]post{}, 1, 6))
}

func TestResetRestoresBaseline(t *testing.T) {
	cfg := postConfig()
	ctl := New(cfg)
	ctl.SetItems(samplePosts())
	ctl.SetSort("title-desc")
	ctl.SetSearch("visa")
	ctl.SetCategory("Visas")
	ctl.SetFilters(Filters{"location": Text("vancouver")})
	require.Equal(t, 1, ctl.Total())

	ctl.ResetFilters()
	state := ctl.State()
	assert.Equal(t, ids(Sort(cfg, samplePosts(), "title-desc")), ids(state.Filtered))
	assert.Empty(t, state.Filters)
	assert.Equal(t, "", state.Search)
	assert.Equal(t, "All Topics", state.Category)
	assert.Equal(t, 1, state.Page)
}

func TestSetFiltersMergesKeys(t *testing.T) {
	cfg := postConfig()
	ctl := New(cfg)
	ctl.SetItems(samplePosts())
	ctl.SetFilters(Filters{"location": Text("toronto")})
	ctl.SetFilters(Filters{"dateRange": Between(day("2024-01-01"), day("2024-01-05"))})

	state := ctl.State()
	assert.Len(t, state.Filters, 2)
	assert.ElementsMatch(t, []string{"1", "5"}, ids(state.Filtered))

	ctl.SetFilters(Filters{"location": {}})
	assert.Len(t, ctl.State().Filters, 1)
}

func TestDateRangeIsInclusive(t *testing.T) {
	cfg := postConfig()
	got := Filter(cfg, samplePosts(), Filters{"dateRange": Between(day("2024-01-05"), day("2024-01-20"))}, "", "")
	assert.Equal(t, []string{"1", "3", "5"}, ids(got))
}

func TestUnknownFilterKeyPassesEverything(t *testing.T) {
	cfg := postConfig()
	got := Filter(cfg, samplePosts(), Filters{"colour": Text("blue")}, "", "")
	assert.Len(t, got, len(samplePosts()))
}

func TestEmptyCollection(t *testing.T) {
	cfg := postConfig()
	ctl := New(cfg)
	ctl.SetFilters(Filters{"location": Text("x")})
	ctl.SetSearch("anything")
	assert.Empty(t, ctl.PageItems())
	assert.Equal(t, 0, ctl.TotalPages())
	assert.Equal(t, 1, ctl.State().Page)
}

func TestTransitionsResetPage(t *testing.T) {
	cfg := postConfig()
	cfg.PageSize = 2
	ctl := New(cfg)
	ctl.SetItems(samplePosts())
	ctl.SetSort("date-desc")

	ctl.SetPage(3)
	require.Equal(t, 3, ctl.State().Page)
	ctl.SetSearch("")
	assert.Equal(t, 1, ctl.State().Page)

	ctl.SetPage(2)
	ctl.SetSort("title-asc")
	assert.Equal(t, 1, ctl.State().Page)

	ctl.SetPage(2)
	ctl.SetCategory("Visas")
	assert.Equal(t, 1, ctl.State().Page)
}

func TestSetPageClamps(t *testing.T) {
	cfg := postConfig()
	cfg.PageSize = 2
	ctl := New(cfg)
	ctl.SetItems(samplePosts())

	ctl.SetPage(10)
	assert.Equal(t, 3, ctl.State().Page)
	assert.Len(t, ctl.PageItems(), 1)

	ctl.SetPage(-4)
	assert.Equal(t, 1, ctl.State().Page)
}

func TestRefreshKeepsPageInRange(t *testing.T) {
	cfg := postConfig()
	cfg.PageSize = 2
	ctl := New(cfg)
	ctl.SetItems(samplePosts())
	ctl.SetPage(3)

	ctl.Refresh()
	assert.Equal(t, 3, ctl.State().Page)
	assert.Len(t, ctl.PageItems(), 1)
}

func TestSetSortDoesNotRefilter(t *testing.T) {
	cfg := postConfig()
	ctl := New(cfg)
	ctl.SetItems(samplePosts())
	ctl.SetCategory("Scholarships")
	ctl.SetSort("title-asc")
	assert.Equal(t, []string{"4", "2"}, ids(ctl.State().Filtered))
}

func TestSetItemsDoesNotAliasInput(t *testing.T) {
	cfg := postConfig()
	items := samplePosts()
	ctl := New(cfg)
	ctl.SetItems(items)
	ctl.SetSort("title-asc")
	items[0].Title = "mutated"
	assert.NotEqual(t, "mutated", ctl.State().Items[0].Title)
	assert.Equal(t, "1", samplePosts()[0].ID)
}

func TestLoadReappliesActiveState(t *testing.T) {
	cfg := postConfig()
	ctl := New(cfg)
	ctl.SetCategory("Visas")
	ctl.SetSearch("interview")

	err := ctl.Load(context.Background(), FetcherFunc[post](func(ctx context.Context) ([]post, error) {
		return samplePosts(), nil
	}))
	require.NoError(t, err)
	state := ctl.State()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	assert.Equal(t, []string{"3"}, ids(state.Filtered))
}

func TestLoadFailureRecordsError(t *testing.T) {
	cfg := postConfig()
	ctl := New(cfg)
	ctl.SetItems(samplePosts())

	err := ctl.Load(context.Background(), FetcherFunc[post](func(ctx context.Context) ([]post, error) {
		return nil, errors.New("boom")
	}))
	require.Error(t, err)
	state := ctl.State()
	assert.Equal(t, "boom", state.Err)
	assert.Empty(t, state.Items)
	assert.NotNil(t, state.Filtered)
	assert.False(t, state.Loading)
}

func TestLoadCancelledKeepsState(t *testing.T) {
	cfg := postConfig()
	ctl := New(cfg)
	ctl.SetItems(samplePosts())

	ctx, cancel := context.WithCancel(context.Background())
	err := ctl.Load(ctx, FetcherFunc[post](func(ctx context.Context) ([]post, error) {
		cancel()
		return []post{}, nil
	}))
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, ctl.State().Items, len(samplePosts()))
}

func TestWindowHugePageIsEmpty(t *testing.T) {
	items := []int{1, 2, 3}

	assert.NotPanics(t, func() {
		assert.Empty(t, Window(items, math.MaxInt/2+2, 2))
		assert.Empty(t, Window(items, math.MaxInt, 1))
	})
	assert.Equal(t, []int{3}, Window(items, 2, 2))
	assert.Empty(t, Window([]int{}, 1, 2))
}
