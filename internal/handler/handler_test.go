package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyabroad-api/internal/middleware"
	"github.com/noah-isme/studyabroad-api/internal/models"
	"github.com/noah-isme/studyabroad-api/internal/service"
	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
)

type envelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *appErrors.Error       `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func testContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

// serveRoute runs h behind a gin engine so headers written after the handler,
// such as a bare 204, reach the recorder.
func serveRoute(method, route, target, body string, session *models.Session, h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if session != nil {
			c.Set(middleware.ContextUserKey, session)
		}
		c.Next()
	}, h)
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type authServiceMock struct {
	registered models.RegisterRequest
	err        error
	logoutUser string
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return &models.LoginResponse{AccessToken: "a"}, m.err
}

func (m *authServiceMock) Register(ctx context.Context, req models.RegisterRequest, ip, userAgent string) (*models.LoginResponse, error) {
	m.registered = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.LoginResponse{AccessToken: "a", User: models.UserInfo{Email: req.Email, Role: models.RoleStudent}}, nil
}

func (m *authServiceMock) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.RefreshTokenResponse, error) {
	return &models.RefreshTokenResponse{}, m.err
}

func (m *authServiceMock) Logout(ctx context.Context, refreshToken string, userID string, meta models.LoginRequest) error {
	m.logoutUser = userID
	return m.err
}

func (m *authServiceMock) Me(ctx context.Context, userID string) (*models.User, error) {
	return &models.User{ID: userID, Email: "me@example.com"}, m.err
}

func TestAuthHandlerRegister(t *testing.T) {
	svc := &authServiceMock{}
	handler := NewAuthHandler(svc)

	c, w := testContext(http.MethodPost, "/auth/register", `{"full_name":"Asha","email":"asha@example.com","password":"secret1","country":"Canada","wants_loan":true}`)
	handler.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Canada", svc.registered.Country)
	assert.True(t, svc.registered.WantsLoan)
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	handler := NewAuthHandler(&authServiceMock{err: appErrors.Clone(appErrors.ErrEmailTaken, "")})

	c, w := testContext(http.MethodPost, "/auth/register", `{"full_name":"Asha","email":"asha@example.com","password":"secret1"}`)
	handler.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email already registered", decode(t, w).Error.Message)
}

func TestAuthHandlerMeRequiresSession(t *testing.T) {
	svc := &authServiceMock{}
	handler := NewAuthHandler(svc)

	c, w := testContext(http.MethodGet, "/auth/me", "")
	handler.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testContext(http.MethodGet, "/auth/me", "")
	c.Set(middleware.ContextUserKey, &models.Session{UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)})
	handler.Me(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w).Meta, "session_expires_at")

	w = serveRoute(http.MethodPost, "/auth/logout", "/auth/logout", `{"refresh_token":"rt"}`, &models.Session{UserID: "u1"}, handler.Logout)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "u1", svc.logoutUser)
}

type examServiceMock struct {
	items     map[string]models.Exam
	lastActor string
	deleted   []string
}

func (m *examServiceMock) ListActive(ctx context.Context) ([]models.Exam, error) {
	out := []models.Exam{}
	for _, e := range m.items {
		out = append(out, e)
	}
	return out, nil
}

func (m *examServiceMock) Get(ctx context.Context, id string) (*models.Exam, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}
	return &e, nil
}

func (m *examServiceMock) Create(ctx context.Context, req models.ExamRequest, actorID string) (*models.Exam, error) {
	m.lastActor = actorID
	return &models.Exam{ID: "e1", Name: req.Name, ExamType: req.ExamType}, nil
}

func (m *examServiceMock) Update(ctx context.Context, id string, req models.ExamRequest) (*models.Exam, error) {
	return &models.Exam{ID: id, Name: req.Name}, nil
}

func (m *examServiceMock) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestContentHandlerCRUD(t *testing.T) {
	svc := &examServiceMock{items: map[string]models.Exam{"e1": {ID: "e1", Name: "JEE Main"}}}
	handler := NewContentHandler[models.Exam, models.ExamRequest](svc, "exam")

	c, w := testContext(http.MethodPost, "/exams", `{"name":"NEET","exam_type":"National"}`)
	c.Set(middleware.ContextUserKey, &models.Session{UserID: "publisher-1", Role: models.RolePublisher})
	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "publisher-1", svc.lastActor)

	c, w = testContext(http.MethodPost, "/exams", `{"name":`)
	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = testContext(http.MethodGet, "/exams/missing", "")
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = testContext(http.MethodGet, "/exams/slug/jee", "")
	c.Params = gin.Params{{Key: "slug", Value: "jee"}}
	handler.GetBySlug(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serveRoute(http.MethodDelete, "/exams/:id", "/exams/e1", "", nil, handler.Delete)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, []string{"e1"}, svc.deleted)

	c, w = testContext(http.MethodGet, "/exams", "")
	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	var exams []models.Exam
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &exams))
	assert.Len(t, exams, 1)
}

type collegeLookupMock struct {
	lookedUp string
}

func (m *collegeLookupMock) ListActive(ctx context.Context) ([]models.College, error) {
	return []models.College{{ID: "c1"}, {ID: "c2"}}, nil
}

func (m *collegeLookupMock) Lookup(ctx context.Context, slug string) ([]models.College, error) {
	m.lookedUp = slug
	return []models.College{}, nil
}

type relationServiceMock struct{ err error }

func (m relationServiceMock) Link(ctx context.Context, req models.CollegeCourseRequest) (*models.CollegeCourse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.CollegeCourse{ID: "r1", CollegeID: req.CollegeID, CourseID: req.CourseID}, nil
}

func (m relationServiceMock) CoursesOf(ctx context.Context, collegeID string) ([]models.Course, error) {
	return []models.Course{{ID: "k1"}}, m.err
}

func TestCollegeHandlerListBySlug(t *testing.T) {
	lookup := &collegeLookupMock{}
	handler := NewCollegeHandler(lookup, relationServiceMock{})

	c, w := testContext(http.MethodGet, "/colleges?slug=harvard-university", "")
	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "harvard-university", lookup.lookedUp)
	assert.JSONEq(t, "[]", string(decode(t, w).Data))

	c, w = testContext(http.MethodGet, "/colleges", "")
	handler.List(c)
	var colleges []models.College
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &colleges))
	assert.Len(t, colleges, 2)
}

func TestCollegeHandlerLinkConflict(t *testing.T) {
	handler := NewCollegeHandler(&collegeLookupMock{}, relationServiceMock{err: appErrors.Clone(appErrors.ErrAlreadyLinked, "")})

	c, w := testContext(http.MethodPost, "/relations/college-courses", `{"college_id":"c1","course_id":"k1"}`)
	handler.LinkCourse(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

type browseServiceMock struct {
	name  string
	query service.BrowseQuery
	err   error
}

func (m *browseServiceMock) Browse(ctx context.Context, name string, q service.BrowseQuery) (*service.BrowseResult, error) {
	m.name, m.query = name, q
	if m.err != nil {
		return nil, m.err
	}
	return &service.BrowseResult{
		Items:      []models.Blog{{ID: "b1"}},
		Pagination: &models.Pagination{Page: 1, PageSize: 6, TotalCount: 1, TotalPages: 1},
		Meta:       service.BrowseMeta{Listing: name, CacheHit: true, Categories: []string{"All Topics"}},
	}, nil
}

type staticCountries []models.Country

func (s staticCountries) Countries() []models.Country { return s }

func TestBrowseHandlerPassesQuery(t *testing.T) {
	svc := &browseServiceMock{}
	handler := NewBrowseHandler(svc, staticCountries{{Name: "Canada"}})

	c, w := testContext(http.MethodGet, "/browse/blogs?search=visa&category=Scholarships&sort=date-asc&page=2&from=2024-01-01&to=2024-02-01&location=Pune", "")
	c.Params = gin.Params{{Key: "type", Value: "blogs"}}
	handler.Browse(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "blogs", svc.name)
	assert.Equal(t, "visa", svc.query.Search)
	assert.Equal(t, "Scholarships", svc.query.Category)
	assert.Equal(t, "date-asc", svc.query.Sort)
	assert.Equal(t, 2, svc.query.Page)
	assert.Equal(t, "2024-01-01", svc.query.From)
	assert.Equal(t, map[string]string{"location": "Pune"}, svc.query.Filters)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	env := decode(t, w)
	assert.Equal(t, true, env.Meta["cache_hit"])
	assert.Equal(t, 1, env.Pagination.TotalCount)
}

func TestBrowseHandlerUnknownType(t *testing.T) {
	handler := NewBrowseHandler(&browseServiceMock{err: appErrors.Clone(appErrors.ErrUnknownListing, "")}, staticCountries{})

	c, w := testContext(http.MethodGet, "/browse/nope", "")
	c.Params = gin.Params{{Key: "type", Value: "nope"}}
	handler.Browse(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type leadServiceMock struct {
	ip     string
	filter models.LeadFilter
}

func (m *leadServiceMock) Submit(ctx context.Context, req models.LeadRequest, ip string) (*models.Lead, error) {
	m.ip = ip
	return &models.Lead{ID: "lead-1"}, nil
}

func (m *leadServiceMock) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, *models.Pagination, error) {
	m.filter = filter
	return []models.Lead{}, &models.Pagination{Page: 1}, nil
}

type exporterMock struct{ format string }

func (m *exporterMock) ExportLeads(ctx context.Context, filter models.LeadFilter, format string) (*service.ExportFile, error) {
	m.format = format
	return &service.ExportFile{Filename: "leads.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("a,b\n")}, nil
}

func TestLeadHandlerContact(t *testing.T) {
	svc := &leadServiceMock{}
	handler := NewLeadHandler(svc, &exporterMock{})

	c, w := testContext(http.MethodPost, "/contact", `{"name":"Priya","email":"p@example.com","phone":"1","city":"Pune"}`)
	c.Request.RemoteAddr = "203.0.113.5:4000"
	handler.Contact(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "203.0.113.5", svc.ip)
}

func TestLeadHandlerListParsesDates(t *testing.T) {
	svc := &leadServiceMock{}
	handler := NewLeadHandler(svc, &exporterMock{})

	c, w := testContext(http.MethodGet, "/leads?from=2024-01-01&to=2024-01-31&page=3", "")
	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.filter.To)
	assert.Equal(t, 31, svc.filter.To.Day())
	assert.Equal(t, 23, svc.filter.To.Hour())
	assert.Equal(t, 3, svc.filter.Page)

	c, w = testContext(http.MethodGet, "/leads?from=yesterday", "")
	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeadHandlerExport(t *testing.T) {
	exporter := &exporterMock{}
	handler := NewLeadHandler(&leadServiceMock{}, exporter)

	c, w := testContext(http.MethodGet, "/leads/export?format=csv", "")
	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", exporter.format)
	assert.Equal(t, `attachment; filename="leads.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", w.Body.String())
}

func TestReadyReportsFailingDependency(t *testing.T) {
	handler := NewMetricsHandler(service.NewMetricsService(), map[string]Pinger{
		"postgres": PingFunc(func(ctx context.Context) error { return nil }),
		"redis":    PingFunc(func(ctx context.Context) error { return errors.New("connection refused") }),
	})

	c, w := testContext(http.MethodGet, "/ready", "")
	handler.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")

	c, w = testContext(http.MethodGet, "/health", "")
	handler.Health(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
