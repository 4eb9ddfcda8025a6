package imagestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

type httpStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *log.Logger
}

// NewHTTP builds a Store backed by an HTTP object-storage endpoint.
// Uploads POST multipart to <baseURL>/upload; deletes go to
// <baseURL>/images/<publicID>.
func NewHTTP(baseURL, apiKey string, logger *log.Logger) Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &httpStore{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

func (s *httpStore) Upload(ctx context.Context, filename string, r io.Reader) (*Upload, error) {
	// The public id is minted client-side so a delete is always possible,
	// even when the service response omits one.
	publicID := uuid.NewString()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("public_id", publicID); err != nil {
		return nil, err
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image store upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Printf("imagestore: upload %s status=%d", filename, resp.StatusCode)
		return nil, fmt.Errorf("image store upload: unexpected status %d", resp.StatusCode)
	}

	var parsed Upload
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("image store upload: decode response: %w", err)
	}
	if parsed.URL == "" {
		return nil, fmt.Errorf("image store upload: response missing url")
	}
	if parsed.PublicID == "" {
		parsed.PublicID = publicID
	}
	s.logger.Printf("imagestore: uploaded %s public_id=%s", filename, parsed.PublicID)
	return &parsed, nil
}

func (s *httpStore) Delete(ctx context.Context, publicID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+"/images/"+url.PathEscape(publicID), nil)
	if err != nil {
		return err
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("image store delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("image store delete: unexpected status %d", resp.StatusCode)
	}
	return nil
}
