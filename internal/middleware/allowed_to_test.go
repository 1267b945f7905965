package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"eshop_back_end/internal/models"
)

func performWithRole(role string, allowed ...string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		if role != "" {
			c.Set(CtxRole, role)
		}
	}, AllowedTo(allowed...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestAllowedToAcceptsListedRole(t *testing.T) {
	w := performWithRole(models.RoleAdmin, models.RoleAdmin, models.RoleManager)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAllowedToRejectsOtherRole(t *testing.T) {
	w := performWithRole(models.RoleUser, models.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAllowedToRejectsMissingRole(t *testing.T) {
	w := performWithRole("", models.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
