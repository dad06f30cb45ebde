package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crestline/irportal/internal/backend"
)

// GenerateAgreement forwards an agreement-generation request to the external
// backend unchanged and relays its JSON response.
func (s *Server) GenerateAgreement(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	payload, err := s.backendClient.GenerateAgreement(c.Request.Context(), id, c.Request.Body)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// TOSDocuments proxies the document listing. Outside production a bundled
// fixture keeps the portal demoable when the backend is down.
func (s *Server) TOSDocuments(c *gin.Context) {
	payload, err := s.backendClient.TOSDocuments(c.Request.Context())
	if err != nil {
		if errors.Is(err, backend.ErrBackendUnavailable) && !s.cfg.IsProduction() {
			c.Data(http.StatusOK, "application/json", backend.TOSFixture)
			return
		}
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// UploadTOS passes the multipart form through as-is.
func (s *Server) UploadTOS(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		AbortWithError(c, newValidationError("body", "invalid_content_type", "multipart form data required"))
		return
	}

	payload, err := s.backendClient.UploadTOS(c.Request.Context(), contentType, c.Request.Body)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}
