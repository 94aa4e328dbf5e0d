package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNoCache(t *testing.T) {
	r := gin.New()
	r.Use(NoCache())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

	want := map[string]string{
		"Cache-Control": "no-cache, no-store, must-revalidate",
		"Expires":       "0",
		"Pragma":        "no-cache",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}
