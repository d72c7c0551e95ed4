package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/usecase"
)

// Client exposes blob storage operations.
type Client interface {
	Upload(ctx context.Context, file usecase.FileUpload) (model.StoredFile, error)
}

// HTTPClient implements Client against the drive HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the JSON payload returned per stored object.
type response struct {
	ID           string `json:"id"`
	ViewLink     string `json:"webViewLink"`
	DownloadLink string `json:"webContentLink"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size,string"`
}

// NewHTTPClient creates the drive client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse drive url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("drive url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Upload streams the file as multipart form data and returns its links. The
// object key is a fresh UUID so duplicate file names never collide.
func (c *HTTPClient) Upload(ctx context.Context, file usecase.FileUpload) (model.StoredFile, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/files")

	key := uuid.NewString()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("name", key); err != nil {
		return model.StoredFile{}, err
	}
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return model.StoredFile{}, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return model.StoredFile{}, err
	}
	if err := writer.Close(); err != nil {
		return model.StoredFile{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &body)
	if err != nil {
		return model.StoredFile{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.StoredFile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(resp.Body)
		c.logger.Error("drive upload failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(payload)),
		)
		return model.StoredFile{}, fmt.Errorf("drive error: %s", resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.StoredFile{}, err
	}
	var data response
	if err := json.Unmarshal(payload, &data); err != nil {
		return model.StoredFile{}, err
	}

	stored := model.StoredFile{
		OriginalName: file.Name,
		MimeType:     file.MimeType,
		Size:         data.Size,
		Ref:          data.ID,
		ViewLink:     data.ViewLink,
		DownloadLink: data.DownloadLink,
	}
	if stored.Size == 0 {
		stored.Size = int64(len(file.Data))
	}
	if stored.MimeType == "" {
		stored.MimeType = data.MimeType
	}
	return stored, nil
}
