package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
)

func TestPaginate(t *testing.T) {
	p := Paginate(2, 6, 13)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 13, p.TotalCount)

	empty := Paginate(1, 6, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestErrorUsesTypedStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.Clone(appErrors.ErrTooManyRequests, "slow down"))

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var env struct {
		Error appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Error.Code)
	assert.Equal(t, "slow down", env.Error.Message)
}

func TestJSONIncludesMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSON(c, http.StatusOK, []string{"a"}, Paginate(1, 6, 1), map[string]interface{}{"cache_hit": true})

	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, true, env["meta"].(map[string]interface{})["cache_hit"])
	assert.Equal(t, float64(1), env["pagination"].(map[string]interface{})["total_pages"])
}
