// Package catalog binds each listing type of the consultancy site to the
// shared listing controller: its categories, searchable fields, filters and sorts.
package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/noah-isme/studyabroad-api/internal/models"
)

// Kind names a listing type.
type Kind string

const (
	KindColleges     Kind = "colleges"
	KindCourses      Kind = "courses"
	KindBlogs        Kind = "blogs"
	KindUniversities Kind = "universities"
	KindExams        Kind = "exams"
)

// Kinds returns every listing type in display order.
func Kinds() []Kind {
	return []Kind{KindColleges, KindCourses, KindBlogs, KindUniversities, KindExams}
}

// ParseKind resolves a listing type name, ignoring case.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// Filter keys shared by the listing configurations.
const (
	FilterLocation  = "location"
	FilterDuration  = "duration"
	FilterDateRange = "dateRange"
	FilterFeatured  = "featured"
	FilterExamType  = "exam_type"
)

// Countries are the destinations shown on the site.
var Countries = []models.Country{
	{Name: "Australia", Flag: "🇦🇺"},
	{Name: "Canada", Flag: "🇨🇦"},
	{Name: "Germany", Flag: "🇩🇪"},
	{Name: "Ireland", Flag: "🇮🇪"},
	{Name: "United States", Flag: "🇺🇸"},
	{Name: "United Kingdom", Flag: "🇬🇧"},
}

var (
	nonSlug  = regexp.MustCompile(`[^a-z0-9]+`)
	firstInt = regexp.MustCompile(`\d+`)
)

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(slug, "-")
}

// SlugToName turns a slug back into the words it was built from.
func SlugToName(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// ParseReadTime extracts the minute count from a display string such as "5 min read".
// Strings without digits yield 0.
func ParseReadTime(s string) int {
	m := firstInt.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
