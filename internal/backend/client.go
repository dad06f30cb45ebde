// Package backend is the thin client for the external investor-relations
// backend. Agreement generation and ToS document storage live there; the
// portal forwards requests to one canonical configured path per resource.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/crestline/irportal/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrBackendUnavailable = errors.New("backend unavailable")

// Module wires the backend client.
var Module = fx.Module("backend.client",
	fx.Provide(NewClient),
)

type Client struct {
	log    *zap.Logger
	holder *config.BackendConfigHolder
	http   *http.Client
}

func NewClient(log *zap.Logger, holder *config.BackendConfigHolder) *Client {
	return &Client{
		log:    log.Named("backend.client"),
		holder: holder,
		http:   &http.Client{},
	}
}

// GenerateAgreement forwards an agreement-generation request for one investor
// and returns the backend's raw JSON response.
func (c *Client) GenerateAgreement(ctx context.Context, investorID string, body io.Reader) ([]byte, error) {
	cfg := c.holder.Current()
	path := fmt.Sprintf(cfg.AgreementPath, url.PathEscape(investorID))
	return c.do(ctx, http.MethodPost, path, "application/json", body)
}

// TOSDocuments fetches the terms-of-service document listing.
func (c *Client) TOSDocuments(ctx context.Context) ([]byte, error) {
	cfg := c.holder.Current()
	return c.do(ctx, http.MethodGet, cfg.TOSDocumentsPath, "", nil)
}

// UploadTOS forwards a multipart document upload as-is.
func (c *Client) UploadTOS(ctx context.Context, contentType string, body io.Reader) ([]byte, error) {
	cfg := c.holder.Current()
	return c.do(ctx, http.MethodPost, cfg.TOSUploadPath, contentType, body)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	cfg := c.holder.Current()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	target := strings.TrimRight(cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, ErrBackendUnavailable
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrBackendUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("backend returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, ErrBackendUnavailable
	}

	return payload, nil
}
