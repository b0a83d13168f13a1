package attendance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	attendanceerrors "github.com/towet/payroll-processing-sys/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	markFn       func(ctx context.Context, employeeID string) (MarkResponse, error)
	markAbsentFn func(ctx context.Context, req MarkAbsentRequest) (AttendanceResponse, error)
	listFn       func(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
}

func (f *fakeService) Mark(ctx context.Context, employeeID string) (MarkResponse, error) {
	return f.markFn(ctx, employeeID)
}
func (f *fakeService) MarkAbsent(ctx context.Context, req MarkAbsentRequest) (AttendanceResponse, error) {
	return f.markAbsentFn(ctx, req)
}
func (f *fakeService) List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	return f.listFn(ctx, filter)
}

func TestHandler_Mark(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("clock in is 201", func(t *testing.T) {
		h := NewHandler(&fakeService{markFn: func(ctx context.Context, employeeID string) (MarkResponse, error) {
			assert.Equal(t, "emp-1", employeeID)
			return MarkResponse{Action: ActionClockIn}, nil
		}})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/attendance/mark", nil)
		c.Set("employee_id", "emp-1")

		h.Mark(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("clocked out already", func(t *testing.T) {
		h := NewHandler(&fakeService{markFn: func(ctx context.Context, employeeID string) (MarkResponse, error) {
			return MarkResponse{}, attendanceerrors.ErrAlreadyClockedOut
		}})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/attendance/mark", nil)
		c.Set("employee_id", "emp-1")

		h.Mark(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already clocked out for today")
	})

	t.Run("no employee profile", func(t *testing.T) {
		h := NewHandler(&fakeService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/attendance/mark", nil)

		h.Mark(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_MarkAbsentValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(&fakeService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/attendance/absent", strings.NewReader(`{"employee_id":"nope"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.MarkAbsent(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ListScopesEmployees(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(&fakeService{listFn: func(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
		assert.Equal(t, "emp-1", filter.EmployeeID)
		assert.Equal(t, "2024-05-10", filter.Date)
		return []AttendanceResponse{{ID: "a-1"}}, nil
	}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/attendance?employee_id=emp-2&date=2024-05-10", nil)
	c.Set("role", "employee")
	c.Set("employee_id", "emp-1")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a-1")
}
