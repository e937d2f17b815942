package client

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/fotoflesz/printshop-backend/internal/http/handlers"
	"github.com/fotoflesz/printshop-backend/internal/ingest"
	"github.com/fotoflesz/printshop-backend/internal/server"
)

// Drives the real submitter against the real router and ingest service.
func TestSubmitEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, q, log := newHarness(t)
	root := t.TempDir()

	router := server.NewRouter(server.RouterConfig{
		Log:           log,
		UploadHandler: handlers.NewUploadHandler(log, ingest.NewService(log, root), handlers.DefaultMaxUploadBytes),
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	addLine(t, q, store, "10x15", 3, "first-jpeg")
	addLine(t, q, store, "21x30", 150, "second-jpeg")

	resp, err := NewSubmitter(log, srv.URL+"/upload", store).Submit(context.Background(), q, testCustomer)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !resp.Success || resp.Message != "Zapisano 2 plików" {
		t.Fatalf("response = %+v", resp)
	}
	if q.Len() != 0 {
		t.Fatal("queue should be cleared after a successful round trip")
	}

	base := filepath.Join(root, "Jan_Kowalski_600100200")
	first, err := os.ReadFile(filepath.Join(base, "10x15_glossy", "3szt_color_1.jpg"))
	if err != nil {
		t.Fatalf("first file: %v", err)
	}
	if string(first) != "first-jpeg" {
		t.Fatalf("first file content %q; positional matching broken", first)
	}
	second, err := os.ReadFile(filepath.Join(base, "21x30_glossy", "150szt_color_2.jpg"))
	if err != nil {
		t.Fatalf("second file: %v", err)
	}
	if string(second) != "second-jpeg" {
		t.Fatalf("second file content %q; positional matching broken", second)
	}

	manifest, err := os.ReadFile(filepath.Join(base, ingest.ManifestFileName))
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if !strings.Contains(string(manifest), "SUMA: 759.00 zł") {
		t.Fatalf("manifest total wrong:\n%s", manifest)
	}
}
