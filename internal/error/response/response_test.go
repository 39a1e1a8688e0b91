package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluemoon-http-service/internal/error/code"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"id": "HK000001"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(code.ErrSuccess), body["code"])
	assert.Equal(t, "HK000001", body["data"].(map[string]interface{})["id"])
}

func TestFailUsesRegisteredStatus(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Fail(c, code.ErrVehicleAlreadyExist, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, code.GetMessage(code.ErrVehicleAlreadyExist), body["message"])
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestPaginated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Paginated(c, []int{1, 2, 3}, 23, 3, 10)

	body := decode(t, w)
	assert.Equal(t, float64(23), body["total"])
	assert.Equal(t, float64(3), body["page"])
	assert.Equal(t, float64(10), body["limit"])
	assert.Equal(t, float64(3), body["total_pages"])
	assert.Len(t, body["data"], 3)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestParamErrorDefaultsMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ParamError(c, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, code.GetMessage(code.ErrValidation), decode(t, w)["message"])
}
