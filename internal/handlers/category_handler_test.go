package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/taxonomy"
)

func setupCategoryRouter() *gin.Engine {
	r := gin.New()
	r.GET("/categories", injectUserID(testUserID), NewCategoryHandler(taxonomy.Default()).GetCategories)
	return r
}

func TestCategoryHandler_GetCategories(t *testing.T) {
	r := setupCategoryRouter()

	t.Run("returns every type", func(t *testing.T) {
		rec := doRequest(r, "GET", "/categories", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		for _, typ := range []string{"income", "expense", "savings", "investment"} {
			if _, ok := result[typ]; !ok {
				t.Errorf("missing %s categories", typ)
			}
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		rec := doRequest(r, "GET", "/categories?type=expense", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if len(result) != 1 {
			t.Fatalf("expected one type, got %v", result)
		}
		first := result["expense"].([]interface{})[0].(map[string]interface{})
		if first["value"] != "food" || first["label"] != "Food" {
			t.Errorf("unexpected first expense category %v", first)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		rec := doRequest(r, "GET", "/categories?type=transfer", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorField(t, parseJSON(t, rec), "type")
	})
}
