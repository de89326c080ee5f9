package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type semesterURI struct {
	Semester string `uri:"semester" binding:"required,semester"`
}

type addBody struct {
	RawID string `json:"raw_id" binding:"required,max=8"`
}

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func TestIsSemester(t *testing.T) {
	for s, want := range map[string]bool{
		"1121":  true,
		"1122":  true,
		"112":   false,
		"11210": false,
		"11a1":  false,
		"":      false,
	} {
		if got := IsSemester(s); got != want {
			t.Errorf("IsSemester(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestBindURISemester(t *testing.T) {
	var fields map[string]string
	r := gin.New()
	r.GET("/t/:semester", func(c *gin.Context) {
		var uri semesterURI
		fields = BindURI(c, &uri)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/t/1121", nil))
	if fields != nil {
		t.Errorf("valid semester rejected: %v", fields)
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/t/fall", nil))
	if !strings.Contains(fields["semester"], "semester key") {
		t.Errorf("fields = %v, want translated semester error", fields)
	}
}

func TestBindTranslatesJSONFieldNames(t *testing.T) {
	var fields map[string]string
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var body addBody
		fields = Bind(c, &body)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"raw_id":""}`)))
	if _, ok := fields["raw_id"]; !ok {
		t.Errorf("fields = %v, want raw_id entry", fields)
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`)))
	if _, ok := fields["detail"]; !ok {
		t.Errorf("fields = %v, want detail for malformed JSON", fields)
	}
}
