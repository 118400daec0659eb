package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestFormatValidationErrors(t *testing.T) {
	type creditRequest struct {
		Quantity string `json:"quantity" binding:"required"`
		Unit     string `json:"unit" binding:"required,max=16"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/credit", func(c *gin.Context) {
		var req creditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, FormatValidationErrors(err, "req-123"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("reports json field names for failed fields", func(t *testing.T) {
		body := strings.NewReader(`{"unit": "a unit name that is far too long"}`)
		req := httptest.NewRequest("POST", "/credit", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-123", resp.Error.RequestID)

		fields := make(map[string]string)
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "This field is required", fields["quantity"])
		assert.Equal(t, "Must be at most 16 characters", fields["unit"])
	})

	t.Run("valid payload passes", func(t *testing.T) {
		body := strings.NewReader(`{"quantity": "25", "unit": "kg"}`)
		req := httptest.NewRequest("POST", "/credit", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non validator error yields no details", func(t *testing.T) {
		resp := FormatValidationErrors(assert.AnError, "")
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Error.Details)
	})
}
