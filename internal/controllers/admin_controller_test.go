package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"fleet_registry/internal/models"
)

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

// adminRouter registers admin handlers behind a stub auth step that plants
// the given identity on the context.
func adminRouter(adminID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	claims := func(c *gin.Context) {
		c.Set("admin_id", float64(adminID))
		c.Set("role", role)
	}
	r.DELETE("/admins/:id", claims, DeleteAdmin)
	r.PATCH("/admins/:id", claims, UpdateAdmin)
	r.GET("/admins", claims, ListAdmins)
	return r
}

func TestDeleteAdminRejectsSelfDeletion(t *testing.T) {
	r := adminRouter(1, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/admins/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteAdminRejectsLastPrimaryAdmin(t *testing.T) {
	mock := setupMockDB(t)
	r := adminRouter(1, models.RoleAdmin)

	mock.ExpectQuery(`SELECT \* FROM "admins"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "role"}).
			AddRow(2, "Sole Admin", "sole@fleet-registry.local", models.RoleAdmin))
	// No other primary admin remains once this one is gone.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "admins"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := httptest.NewRequest(http.MethodDelete, "/admins/2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteRegistrarAdminSucceeds(t *testing.T) {
	mock := setupMockDB(t)
	r := adminRouter(1, models.RoleAdmin)

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT \* FROM "admins"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "role"}).
			AddRow(3, "Registrar", "registrar@fleet-registry.local", models.RoleRegistrar))
	// Soft delete.
	mock.ExpectExec(`UPDATE "admins" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodDelete, "/admins/3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateAdminRejectsOwnRoleChange(t *testing.T) {
	mock := setupMockDB(t)
	r := adminRouter(4, models.RoleAdmin)

	mock.ExpectQuery(`SELECT \* FROM "admins"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "role"}).
			AddRow(4, "Self", "self@fleet-registry.local", models.RoleAdmin))

	body := `{"role":"registrar"}`
	req := httptest.NewRequest(http.MethodPatch, "/admins/4", jsonBody(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListAdminsPagesInOneTransaction(t *testing.T) {
	mock := setupMockDB(t)
	r := adminRouter(1, models.RoleAdmin)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "admins"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT \* FROM "admins"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "role"}).
			AddRow(1, "One", "one@fleet-registry.local", models.RoleAdmin).
			AddRow(2, "Two", "two@fleet-registry.local", models.RoleRegistrar))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodGet, "/admins?page=1&limit=2&q=fleet", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Total int `json:"total"`
		Page  int `json:"page"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 12 || resp.Page != 1 {
		t.Fatalf("unexpected paging info: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
