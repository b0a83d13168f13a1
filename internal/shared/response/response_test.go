package response_test

import (
	"net/http/httptest"
	"testing"

	"github.com/towet/payroll-processing-sys/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	meta := response.NewPaginationMeta(21, 2, 10)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(21), meta.Total)

	empty := response.NewPaginationMeta(0, 1, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestPageParamsAndBounds(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/items?page=3&page_size=4", nil)

	page, size := response.PageParams(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 4, size)

	start, end := response.PageBounds(10, page, size)
	assert.Equal(t, 8, start)
	assert.Equal(t, 10, end)

	start, end = response.PageBounds(2, page, size)
	assert.Equal(t, 2, start)
	assert.Equal(t, 2, end)
}

func TestPageParams_Defaults(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/items?page=-1&page_size=abc", nil)

	page, size := response.PageParams(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
}
