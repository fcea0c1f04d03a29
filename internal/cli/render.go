package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/noah-isme/studyabroad-api/internal/models"
	"github.com/noah-isme/studyabroad-api/pkg/listing"
)

type column[T any] struct {
	title string
	value func(T) string
}

var collegeColumns = []column[models.College]{
	{"Name", func(c models.College) string { return c.Name }},
	{"Location", func(c models.College) string { return c.Location }},
	{"Rank", func(c models.College) string { return c.Rank }},
	{"Tuition", func(c models.College) string { return c.Tuition }},
}

var courseColumns = []column[models.Course]{
	{"Title", func(c models.Course) string { return c.Title }},
	{"Category", func(c models.Course) string { return c.Category }},
	{"Duration", func(c models.Course) string { return c.Duration }},
	{"Level", func(c models.Course) string { return c.Level }},
}

var blogColumns = []column[models.Blog]{
	{"Title", func(b models.Blog) string { return b.Title }},
	{"Category", func(b models.Blog) string { return b.Category }},
	{"Author", func(b models.Blog) string { return b.AuthorName }},
	{"Published", func(b models.Blog) string { return b.PublishedAt.Format(dateLayout) }},
}

var universityColumns = []column[models.University]{
	{"Name", func(u models.University) string { return u.Name }},
	{"Country", func(u models.University) string { return u.Country }},
	{"Location", func(u models.University) string { return u.Location }},
	{"Featured", func(u models.University) string { return strconv.FormatBool(u.IsFeatured) }},
}

var examColumns = []column[models.Exam]{
	{"Name", func(e models.Exam) string { return e.Name }},
	{"Type", func(e models.Exam) string { return e.ExamType }},
}

func renderPage[T any](w io.Writer, ctl *listing.Controller[T], cols []column[T]) {
	// Styles are bound to w so colour is only emitted on terminals.
	re := lipgloss.NewRenderer(w)
	headerStyle := re.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle := re.NewStyle().Padding(0, 1)
	mutedStyle := re.NewStyle().Foreground(lipgloss.Color("241"))

	state := ctl.State()
	if state.Err != "" {
		fmt.Fprintln(w, mutedStyle.Render("error: "+state.Err))
	}

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.title
	}
	rows := make([][]string, 0, ctl.PageSize())
	for _, item := range ctl.PageItems() {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = col.value(item)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No results"))
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(re.NewStyle()).
			Headers(headers...).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		fmt.Fprintln(w, t.Render())
	}

	fmt.Fprintln(w, mutedStyle.Render(summary(state, ctl.Total(), ctl.TotalPages())))
}

func summary[T any](state listing.State[T], total, pages int) string {
	parts := []string{fmt.Sprintf("page %d of %d", state.Page, max(pages, 1)), fmt.Sprintf("%d results", total)}
	if state.Category != "" {
		parts = append(parts, "category: "+state.Category)
	}
	parts = append(parts, "sort: "+string(state.Sort))
	return strings.Join(parts, " | ")
}
