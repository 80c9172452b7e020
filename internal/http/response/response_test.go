package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPaginationRoundsUp(t *testing.T) {
	p := NewPagination(2, 6, 13)
	if p.TotalPages != 3 {
		t.Fatalf("total pages want 3 got %d", p.TotalPages)
	}
	if empty := NewPagination(1, 10, 0); empty.TotalPages != 0 {
		t.Fatalf("empty total pages want 0 got %d", empty.TotalPages)
	}
}

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Error(c, CodeForbidden, "denied")

	if w.Code != 200 {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.StatusCode != CodeForbidden || body.Data["request_id"] != "req-1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
