package drive

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vdeep/craftmart/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestHTTPClientUpload(t *testing.T) {
	var gotName string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/files" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		gotName = header.Filename
		gotBody, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":             "obj-1",
			"webViewLink":    "https://drive.test/view/obj-1",
			"webContentLink": "https://drive.test/dl/obj-1",
			"mimeType":       "image/png",
			"size":           "4",
		})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	stored, err := client.Upload(context.Background(), usecase.FileUpload{
		Name:     "screenshot.png",
		MimeType: "image/png",
		Data:     []byte("data"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotName != "screenshot.png" || string(gotBody) != "data" {
		t.Fatalf("server saw name=%q body=%q", gotName, gotBody)
	}
	if stored.Ref != "obj-1" || stored.DownloadLink != "https://drive.test/dl/obj-1" {
		t.Fatalf("unexpected stored file: %+v", stored)
	}
	if stored.OriginalName != "screenshot.png" || stored.Size != 4 {
		t.Fatalf("unexpected stored metadata: %+v", stored)
	}
}

func TestHTTPClientUploadErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.Upload(context.Background(), usecase.FileUpload{Name: "f", Data: []byte("x")})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
