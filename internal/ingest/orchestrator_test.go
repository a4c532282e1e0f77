package ingest_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"lrcloud/internal/ingest"
	"lrcloud/internal/lightroom"
)

const guard = "while(1){}"

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// recorder captures every request and replays canned responses keyed by
// method plus path prefix.
type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  func(w http.ResponseWriter, r *http.Request, body []byte)
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec.mu.Lock()
	rec.requests = append(rec.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	rec.mu.Unlock()
	rec.handler(w, r, body)
}

func (rec *recorder) all() []recordedRequest {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]recordedRequest, len(rec.requests))
	copy(out, rec.requests)
	return out
}

func newOrchestrator(t *testing.T, rec *recorder, opts ...ingest.Option) *ingest.Orchestrator {
	t.Helper()
	server := httptest.NewServer(rec)
	t.Cleanup(server.Close)

	client, err := lightroom.New(server.URL, "integration-key")
	if err != nil {
		t.Fatalf("New client returned error: %v", err)
	}

	ids := makeSequentialIDs()
	base := []ingest.Option{
		ingest.WithIdentifierFunc(ids),
		ingest.WithClock(func() time.Time {
			return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
		}),
	}
	orch, err := ingest.New(client, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New orchestrator returned error: %v", err)
	}
	return orch
}

func makeSequentialIDs() func() string {
	var mu sync.Mutex
	next := 0
	names := []string{"id-asset", "id-revision", "id-extra"}
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		id := names[next%len(names)]
		next++
		return id
	}
}

func projectsBody(entries ...string) string {
	return guard + `{"resources":[` + strings.Join(entries, ",") + `]}`
}

func projectEntry(id, serviceID string) string {
	return `{"id":"` + id + `","subtype":"project","payload":{"name":"` + id + `","publishInfo":{"version":2,"serviceId":"` + serviceID + `"}}}`
}

func TestProjectsFiltersOursPreservingOrder(t *testing.T) {
	rec := &recorder{handler: func(w http.ResponseWriter, r *http.Request, _ []byte) {
		_, _ = io.WriteString(w, projectsBody(
			projectEntry("alb-1", "integration-key"),
			projectEntry("alb-2", "someone-else"),
			`{"id":"alb-3","subtype":"project","payload":{"name":"alb-3"}}`,
			projectEntry("alb-4", "integration-key"),
		))
	}}
	orch := newOrchestrator(t, rec)

	projects, err := orch.Projects(context.Background(), "T", "C1")
	if err != nil {
		t.Fatalf("Projects returned error: %v", err)
	}
	if len(projects) != 2 || projects[0].ID != "alb-1" || projects[1].ID != "alb-4" {
		t.Fatalf("expected [alb-1 alb-4], got %#v", projects)
	}
}

func TestProjectsRequiresTokenWithoutNetworkCall(t *testing.T) {
	rec := &recorder{handler: func(w http.ResponseWriter, r *http.Request, _ []byte) {
		t.Fatal("no request expected")
	}}
	orch := newOrchestrator(t, rec)

	if _, err := orch.Projects(context.Background(), " ", "C1"); !errors.Is(err, lightroom.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if len(rec.all()) != 0 {
		t.Fatal("expected zero requests")
	}
}

func TestCreateProjectPayload(t *testing.T) {
	rec := &recorder{handler: func(w http.ResponseWriter, r *http.Request, _ []byte) {
		w.WriteHeader(http.StatusCreated)
	}}
	orch := newOrchestrator(t, rec)

	albumID, err := orch.CreateProject(context.Background(), "T", "C1")
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}
	if albumID != "id-asset" {
		t.Fatalf("expected generated album id, got %q", albumID)
	}

	requests := rec.all()
	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}
	req := requests[0]
	if req.Method != http.MethodPut || req.Path != "/v2/catalogs/C1/albums/id-asset" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	if req.Header.Get("If-None-Match") != "" {
		t.Fatal("project creation must not send a fingerprint precondition")
	}

	var body lightroom.AlbumCreate
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if body.Subtype != "project" {
		t.Fatalf("expected project subtype, got %q", body.Subtype)
	}
	if body.Payload.Name != "id-asset" {
		t.Fatalf("album name must equal the generated id, got %q", body.Payload.Name)
	}
	if body.Payload.PublishInfo == nil || body.Payload.PublishInfo.Version != 2 || body.Payload.PublishInfo.ServiceID != "integration-key" {
		t.Fatalf("unexpected publish info: %#v", body.Payload.PublishInfo)
	}
	if body.Payload.UserCreated == "" || body.Payload.UserCreated != body.Payload.UserUpdated {
		t.Fatalf("expected matching user timestamps, got %q / %q", body.Payload.UserCreated, body.Payload.UserUpdated)
	}
}

func TestUploadImageEndToEnd(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 64)
	sum := sha256.Sum256(data)
	wantFingerprint := hex.EncodeToString(sum[:])

	rec := &recorder{handler: func(w http.ResponseWriter, r *http.Request, _ []byte) {
		w.WriteHeader(http.StatusCreated)
	}}
	orch := newOrchestrator(t, rec)

	assetID, err := orch.UploadImage(context.Background(), "T", ingest.UploadRequest{
		ImportedBy: "user-1",
		CatalogID:  "C1",
		FileName:   "img.jpg",
		Data:       data,
	})
	if err != nil {
		t.Fatalf("UploadImage returned error: %v", err)
	}
	if assetID != "id-asset" {
		t.Fatalf("unexpected asset id %q", assetID)
	}

	requests := rec.all()
	if len(requests) != 2 {
		t.Fatalf("expected revision then master, got %d requests", len(requests))
	}

	revision := requests[0]
	if revision.Path != "/v2/catalogs/C1/assets/id-asset/revisions/id-revision" {
		t.Fatalf("unexpected revision path %s", revision.Path)
	}
	if got := revision.Header.Get("If-None-Match"); got != wantFingerprint {
		t.Fatalf("expected fingerprint %s, got %s", wantFingerprint, got)
	}
	var body lightroom.RevisionCreate
	if err := json.Unmarshal(revision.Body, &body); err != nil {
		t.Fatalf("unmarshal revision body: %v", err)
	}
	if body.Subtype != "image" {
		t.Fatalf("expected image subtype, got %q", body.Subtype)
	}
	src := body.Payload.ImportSource
	if src.FileName != "img.jpg" || src.ImportedBy != "user-1" || src.ImportedOnDevice != "integration-key" {
		t.Fatalf("unexpected import source: %#v", src)
	}
	if src.ImportTimestamp != "2026-08-25T12:00:00.000Z" {
		t.Fatalf("unexpected import timestamp %q", src.ImportTimestamp)
	}

	master := requests[1]
	if master.Path != "/v2/catalogs/C1/assets/id-asset/revisions/id-revision/master" {
		t.Fatalf("unexpected master path %s", master.Path)
	}
	if got := master.Header.Get("Content-Range"); got != "bytes 0-63/64" {
		t.Fatalf("unexpected content range %q", got)
	}
	if got := master.Header.Get("Content-Type"); got != "application/octet-stream" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := master.Header.Get("X-Generate-Renditions"); got != "all" {
		t.Fatalf("expected rendition directive, got %q", got)
	}
	if !bytes.Equal(master.Body, data) {
		t.Fatal("master body must equal the image bytes")
	}
}

func TestUploadImageDuplicateSkipsMaster(t *testing.T) {
	rec := &recorder{handler: func(w http.ResponseWriter, r *http.Request, _ []byte) {
		w.WriteHeader(http.StatusPreconditionFailed)
	}}
	orch := newOrchestrator(t, rec)

	_, err := orch.UploadImage(context.Background(), "T", ingest.UploadRequest{
		CatalogID: "C1",
		FileName:  "img.jpg",
		Data:      []byte("same bytes"),
	})
	if !errors.Is(err, lightroom.ErrDuplicateContent) {
		t.Fatalf("expected ErrDuplicateContent, got %v", err)
	}
	if got := len(rec.all()); got != 1 {
		t.Fatalf("master upload must not run after 412, saw %d requests", got)
	}
}

func TestUploadImageMasterFailureWrapsStatus(t *testing.T) {
	rec := &recorder{handler: func(w http.ResponseWriter, r *http.Request, _ []byte) {
		if strings.HasSuffix(r.URL.Path, "/master") {
			w.WriteHeader(http.StatusInsufficientStorage)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}}
	orch := newOrchestrator(t, rec)

	assetID, err := orch.UploadImage(context.Background(), "T", ingest.UploadRequest{
		CatalogID: "C1",
		FileName:  "img.jpg",
		Data:      []byte("payload"),
	})
	if assetID != "" {
		t.Fatalf("no asset id may be returned on failure, got %q", assetID)
	}
	status, ok := lightroom.StatusCode(err)
	if !ok || status != http.StatusInsufficientStorage {
		t.Fatalf("expected master status in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "upload master") {
		t.Fatalf("error should reference the master upload, got %v", err)
	}
}

func TestUploadImageRejectsEmptyData(t *testing.T) {
	rec := &recorder{handler: func(w http.ResponseWriter, r *http.Request, _ []byte) {
		t.Fatal("no request expected")
	}}
	orch := newOrchestrator(t, rec)

	if _, err := orch.UploadImage(context.Background(), "T", ingest.UploadRequest{CatalogID: "C1", FileName: "img.jpg"}); err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestUploadToFirstProjectFailsFastWhenEmpty(t *testing.T) {
	rec := &recorder{handler: func(w http.ResponseWriter, r *http.Request, _ []byte) {
		_, _ = io.WriteString(w, projectsBody(projectEntry("alb-1", "someone-else")))
	}}
	orch := newOrchestrator(t, rec)

	_, _, err := orch.UploadImageToFirstProject(context.Background(), "T", ingest.UploadRequest{
		CatalogID: "C1",
		FileName:  "img.jpg",
		Data:      []byte("payload"),
	})
	if !errors.Is(err, lightroom.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	if got := len(rec.all()); got != 1 {
		t.Fatalf("upload must not start without an eligible project, saw %d requests", got)
	}
}

func TestUploadToFirstProjectAttachesAsset(t *testing.T) {
	rec := &recorder{}
	rec.handler = func(w http.ResponseWriter, r *http.Request, _ []byte) {
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, projectsBody(
				projectEntry("alb-first", "integration-key"),
				projectEntry("alb-second", "integration-key"),
			))
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
	orch := newOrchestrator(t, rec)

	assetID, albumID, err := orch.UploadImageToFirstProject(context.Background(), "T", ingest.UploadRequest{
		ImportedBy: "user-1",
		CatalogID:  "C1",
		FileName:   "img.jpg",
		Data:       []byte("payload"),
	})
	if err != nil {
		t.Fatalf("UploadImageToFirstProject returned error: %v", err)
	}
	if assetID != "id-asset" || albumID != "alb-first" {
		t.Fatalf("unexpected ids: asset=%q album=%q", assetID, albumID)
	}

	requests := rec.all()
	last := requests[len(requests)-1]
	if last.Path != "/v2/catalogs/C1/albums/alb-first/assets" {
		t.Fatalf("expected attach to first project, got %s", last.Path)
	}
	var attach lightroom.AlbumAssets
	if err := json.Unmarshal(last.Body, &attach); err != nil {
		t.Fatalf("unmarshal attach body: %v", err)
	}
	if len(attach.Resources) != 1 || attach.Resources[0].ID != "id-asset" {
		t.Fatalf("attach must reference the asset id, got %#v", attach)
	}
}

func TestFingerprintMatchesSHA256(t *testing.T) {
	data := []byte("fingerprint me")
	sum := sha256.Sum256(data)
	if got := ingest.Fingerprint(data); got != hex.EncodeToString(sum[:]) {
		t.Fatalf("unexpected fingerprint %s", got)
	}
}
