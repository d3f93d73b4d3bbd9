package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"doit/internal/auth"
	"doit/internal/middleware"
	"doit/internal/model"
	"doit/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecret = "test-secret-key"

// Mock repositories

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) Create(ctx context.Context, list *model.List) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockListRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.List, error) {
	args := m.Called(ctx, ownerID)
	lists := args.Get(0)
	if lists == nil {
		return nil, args.Error(1)
	}
	return lists.([]model.List), args.Error(1)
}

func (m *MockListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.List, error) {
	args := m.Called(ctx, id)
	list := args.Get(0)
	if list == nil {
		return nil, args.Error(1)
	}
	return list.(*model.List), args.Error(1)
}

func (m *MockListRepository) Update(ctx context.Context, list *model.List) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByListID(ctx context.Context, listID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, listID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newRouter builds a gin engine with the same session/template wiring
// the real server uses.
func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	store := cookie.NewStore([]byte(testSecret))
	r.Use(sessions.Sessions("doit_session", store))
	r.Use(middleware.SessionAuth([]byte(testSecret)))
	r.SetHTMLTemplate(web.Templates())

	return r
}

// loginAs puts a signed token for the user into a fresh cookie session
// and returns the cookies to carry on subsequent requests.
func loginAs(t *testing.T, r *gin.Engine, userID uuid.UUID, username string) []*http.Cookie {
	t.Helper()

	r.GET("/__login", func(c *gin.Context) {
		token, err := auth.GenerateToken([]byte(testSecret), userID.String(), username)
		assert.NoError(t, err)

		session := sessions.Default(c)
		session.Set(middleware.SessionTokenKey, token)
		assert.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})

	req, _ := http.NewRequest("GET", "/__login", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	return resp.Result().Cookies()
}

// doForm posts form values with the given cookies attached.
func doForm(r *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func doGet(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

// mergeCookies overlays any cookies set by resp onto the carried jar.
func mergeCookies(cookies []*http.Cookie, resp *httptest.ResponseRecorder) []*http.Cookie {
	fresh := resp.Result().Cookies()
	if len(fresh) == 0 {
		return cookies
	}

	merged := make([]*http.Cookie, 0, len(cookies)+len(fresh))
	for _, c := range cookies {
		replaced := false
		for _, f := range fresh {
			if f.Name == c.Name {
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, c)
		}
	}
	return append(merged, fresh...)
}

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }
