package catalog

import (
	"strings"
	"time"

	"github.com/noah-isme/studyabroad-api/internal/models"
	"github.com/noah-isme/studyabroad-api/pkg/listing"
)

// Sort options.
const (
	SortTitleAsc     listing.SortOption = "title-asc"
	SortTitleDesc    listing.SortOption = "title-desc"
	SortNameAsc      listing.SortOption = "name-asc"
	SortNameDesc     listing.SortOption = "name-desc"
	SortDateAsc      listing.SortOption = "date-asc"
	SortDateDesc     listing.SortOption = "date-desc"
	SortReadTimeAsc  listing.SortOption = "read-time-asc"
	SortReadTimeDesc listing.SortOption = "read-time-desc"
	SortRankAsc      listing.SortOption = "rank-asc"
	SortRankDesc     listing.SortOption = "rank-desc"
)

// Category sentinels.
const (
	AllBlogTopics = "All Topics"
	AllCourses    = "All"
	AllExams      = "All"
	AllCountries  = "All Countries"
)

// BlogCategories are the topics a blog post can be filed under.
var BlogCategories = []string{AllBlogTopics, "Student Visas", "University Rankings", "Scholarships", "Life Abroad"}

// CourseCategories are the course subject areas.
var CourseCategories = []string{AllCourses, "Business", "Technology", "Medicine", "Engineering"}

// ExamCategories are the exam scopes.
var ExamCategories = []string{AllExams, models.ExamTypeNational, models.ExamTypeState}

// Colleges filter by location only and keep repository order until a sort is chosen.
func Colleges(pageSize int) *listing.Config[models.College] {
	name := func(c models.College) string { return c.Name }
	rank := func(c models.College) int { return c.RankPosition }
	return &listing.Config[models.College]{
		Name:     string(KindColleges),
		PageSize: pageSize,
		SearchFields: func(c models.College) []string {
			return []string{c.Name, c.Location, c.Type, strings.Join(c.Tags, " ")}
		},
		Filters: map[string]listing.Predicate[models.College]{
			FilterLocation: listing.Contains(func(c models.College) string { return c.Location }),
		},
		Sorts: map[listing.SortOption]listing.Comparator[models.College]{
			SortNameAsc:  listing.ByText(name, false),
			SortNameDesc: listing.ByText(name, true),
			SortRankAsc:  listing.ByInt(rank, false),
			SortRankDesc: listing.ByInt(rank, true),
		},
		SortOptions: []listing.SortOption{SortNameAsc, SortNameDesc, SortRankAsc, SortRankDesc},
	}
}

// Courses filter by duration (case preserved) and by the countries a course is popular in.
func Courses(pageSize int) *listing.Config[models.Course] {
	title := func(c models.Course) string { return c.Title }
	return &listing.Config[models.Course]{
		Name:        string(KindCourses),
		PageSize:    pageSize,
		Categories:  CourseCategories,
		AllCategory: AllCourses,
		CategoryOf:  func(c models.Course) string { return c.Category },
		SearchFields: func(c models.Course) []string {
			return []string{c.Title, c.Description, c.Category, c.Prospects}
		},
		Filters: map[string]listing.Predicate[models.Course]{
			FilterDuration: listing.ContainsExact(func(c models.Course) string { return c.Duration }),
			FilterLocation: listing.Contains(func(c models.Course) string { return strings.Join(c.PopularIn, ", ") }),
		},
		Sorts: map[listing.SortOption]listing.Comparator[models.Course]{
			SortTitleAsc:  listing.ByText(title, false),
			SortTitleDesc: listing.ByText(title, true),
		},
		SortOptions: []listing.SortOption{SortTitleAsc, SortTitleDesc},
		DefaultSort: SortTitleAsc,
	}
}

// Blogs filter by publication date range and sort by date, title or read time.
func Blogs(pageSize int) *listing.Config[models.Blog] {
	title := func(b models.Blog) string { return b.Title }
	published := func(b models.Blog) time.Time { return b.PublishedAt }
	minutes := func(b models.Blog) int { return b.ReadTimeMinutes }
	return &listing.Config[models.Blog]{
		Name:        string(KindBlogs),
		PageSize:    pageSize,
		Categories:  BlogCategories,
		AllCategory: AllBlogTopics,
		CategoryOf:  func(b models.Blog) string { return b.Category },
		SearchFields: func(b models.Blog) []string {
			return []string{b.Title, b.Description, b.Category, b.AuthorName}
		},
		Filters: map[string]listing.Predicate[models.Blog]{
			FilterDateRange: listing.Within(published),
		},
		Sorts: map[listing.SortOption]listing.Comparator[models.Blog]{
			SortDateDesc:     listing.ByTime(published, true),
			SortDateAsc:      listing.ByTime(published, false),
			SortTitleAsc:     listing.ByText(title, false),
			SortTitleDesc:    listing.ByText(title, true),
			SortReadTimeAsc:  listing.ByInt(minutes, false),
			SortReadTimeDesc: listing.ByInt(minutes, true),
		},
		SortOptions: []listing.SortOption{SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc, SortReadTimeAsc, SortReadTimeDesc},
		DefaultSort: SortDateDesc,
	}
}

// Universities use the destination country as their category.
func Universities(pageSize int) *listing.Config[models.University] {
	name := func(u models.University) string { return u.Name }
	categories := make([]string, 0, len(Countries)+1)
	categories = append(categories, AllCountries)
	for _, c := range Countries {
		categories = append(categories, c.Name)
	}
	return &listing.Config[models.University]{
		Name:        string(KindUniversities),
		PageSize:    pageSize,
		Categories:  categories,
		AllCategory: AllCountries,
		CategoryOf:  func(u models.University) string { return u.Country },
		SearchFields: func(u models.University) []string {
			return []string{u.Name, u.Location, u.Description}
		},
		Filters: map[string]listing.Predicate[models.University]{
			FilterLocation: listing.Contains(func(u models.University) string { return u.Location }),
			FilterFeatured: listing.Flag(func(u models.University) bool { return u.IsFeatured }),
		},
		Sorts: map[listing.SortOption]listing.Comparator[models.University]{
			SortNameAsc:  listing.ByText(name, false),
			SortNameDesc: listing.ByText(name, true),
		},
		SortOptions: []listing.SortOption{SortNameAsc, SortNameDesc},
	}
}

// Exams are grouped by exam type.
func Exams(pageSize int) *listing.Config[models.Exam] {
	name := func(e models.Exam) string { return e.Name }
	created := func(e models.Exam) time.Time { return e.CreatedAt }
	return &listing.Config[models.Exam]{
		Name:        string(KindExams),
		PageSize:    pageSize,
		Categories:  ExamCategories,
		AllCategory: AllExams,
		CategoryOf:  func(e models.Exam) string { return e.ExamType },
		SearchFields: func(e models.Exam) []string {
			return []string{e.Name, e.Overview, e.Eligibility, e.Syllabus}
		},
		Filters: map[string]listing.Predicate[models.Exam]{
			FilterExamType: listing.Equal(func(e models.Exam) string { return e.ExamType }),
		},
		Sorts: map[listing.SortOption]listing.Comparator[models.Exam]{
			SortNameAsc:  listing.ByText(name, false),
			SortNameDesc: listing.ByText(name, true),
			SortDateDesc: listing.ByTime(created, true),
			SortDateAsc:  listing.ByTime(created, false),
		},
		SortOptions: []listing.SortOption{SortNameAsc, SortNameDesc, SortDateDesc, SortDateAsc},
		DefaultSort: SortNameAsc,
	}
}
