package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lrcloud/internal/identity"
	"lrcloud/internal/lightroom"
	"lrcloud/internal/logging"
)

// wireTimestamp is the timestamp layout the service stores in payloads.
const wireTimestamp = "2006-01-02T15:04:05.000Z"

// unknownCaptureDate is the placeholder the service expects when the
// capture time of an import is not known.
const unknownCaptureDate = "0000-00-00T00:00:00"

const projectSubtype = "project"

// Orchestrator drives the ingestion workflows against a service client.
type Orchestrator struct {
	client    *lightroom.Client
	serviceID string
	logger    *slog.Logger
	newID     func() string
	now       func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithIdentifierFunc overrides identifier generation. Tests pin ids with
// this; production wiring uses identity.NewID.
func WithIdentifierFunc(fn func() string) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithClock overrides the time source used for payload timestamps.
func WithClock(fn func() time.Time) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.now = fn
		}
	}
}

// New creates an orchestrator bound to the given client. The client's
// integration key doubles as the publish-info service identifier that
// marks project albums as ours.
func New(client *lightroom.Client, opts ...Option) (*Orchestrator, error) {
	if client == nil {
		return nil, errors.New("service client required")
	}
	o := &Orchestrator{
		client:    client,
		serviceID: client.APIKey(),
		logger:    logging.NewNop(),
		newID:     identity.NewID,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

func (o *Orchestrator) timestamp() string {
	return o.now().UTC().Format(wireTimestamp)
}

// Fingerprint computes the content fingerprint sent as the duplicate
// detection precondition on revision creation.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Projects lists the catalog's project albums that belong to this
// integration, preserving service order. Albums published by other
// integrations are filtered out.
func (o *Orchestrator) Projects(ctx context.Context, token, catalogID string) ([]lightroom.Album, error) {
	if strings.TrimSpace(token) == "" {
		return nil, lightroom.ErrMissingToken
	}
	albums, err := o.client.AlbumsBySubtype(ctx, token, catalogID, projectSubtype)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	ours := make([]lightroom.Album, 0, len(albums))
	for _, album := range albums {
		info := album.Payload.PublishInfo
		if info != nil && info.ServiceID == o.serviceID {
			ours = append(ours, album)
		}
	}
	return ours, nil
}

// CreateProject creates a new project album owned by this integration
// and returns its generated identifier, which also serves as the album
// name.
func (o *Orchestrator) CreateProject(ctx context.Context, token, catalogID string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", lightroom.ErrMissingToken
	}
	albumID := o.newID()
	now := o.timestamp()
	body := lightroom.AlbumCreate{
		Subtype: projectSubtype,
		Payload: lightroom.AlbumPayload{
			Name:        albumID,
			UserCreated: now,
			UserUpdated: now,
			PublishInfo: &lightroom.PublishInfo{Version: 2, ServiceID: o.serviceID},
		},
	}

	path := fmt.Sprintf("/v2/catalogs/%s/albums/%s", catalogID, albumID)
	if _, err := o.client.PutJSON(ctx, token, path, body, ""); err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}

	o.logger.Info("created project album", "catalog_id", catalogID, "album_id", albumID)
	return albumID, nil
}

// UploadRequest describes a single image ingestion.
type UploadRequest struct {
	// ImportedBy identifies the importing actor recorded on the revision.
	ImportedBy string
	CatalogID  string
	FileName   string
	Data       []byte
}

func (r UploadRequest) validate() error {
	if strings.TrimSpace(r.CatalogID) == "" {
		return errors.New("catalog id required")
	}
	if strings.TrimSpace(r.FileName) == "" {
		return errors.New("file name required")
	}
	if len(r.Data) == 0 {
		return errors.New("image data must not be empty")
	}
	return nil
}

// UploadImage runs the two-stage ingestion workflow: create a revision
// record preconditioned on the content fingerprint, then upload the
// binary master. Stage two runs only after stage one succeeds; a 412
// during stage one surfaces as ErrDuplicateContent and the master is
// never sent. On success the generated asset identifier is returned.
func (o *Orchestrator) UploadImage(ctx context.Context, token string, req UploadRequest) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", lightroom.ErrMissingToken
	}
	if err := req.validate(); err != nil {
		return "", err
	}

	assetID := o.newID()
	revisionID := o.newID()
	fingerprint := Fingerprint(req.Data)

	if err := o.createRevision(ctx, token, req, assetID, revisionID, fingerprint); err != nil {
		return "", err
	}
	if err := o.uploadMaster(ctx, token, req, assetID, revisionID); err != nil {
		// The revision created above stays on the service; callers
		// should query before retrying.
		return "", err
	}

	o.logger.Info("uploaded image",
		"catalog_id", req.CatalogID,
		"asset_id", assetID,
		"revision_id", revisionID,
		"file_name", req.FileName,
		"bytes", len(req.Data),
	)
	return assetID, nil
}

func (o *Orchestrator) createRevision(ctx context.Context, token string, req UploadRequest, assetID, revisionID, fingerprint string) error {
	now := o.timestamp()
	body := lightroom.RevisionCreate{
		Subtype: "image",
		Payload: lightroom.RevisionPayload{
			UserCreated: now,
			UserUpdated: now,
			CaptureDate: unknownCaptureDate,
			ImportSource: lightroom.ImportSource{
				FileName:         req.FileName,
				ImportTimestamp:  now,
				ImportedBy:       req.ImportedBy,
				ImportedOnDevice: o.serviceID,
			},
		},
	}

	path := fmt.Sprintf("/v2/catalogs/%s/assets/%s/revisions/%s", req.CatalogID, assetID, revisionID)
	if _, err := o.client.PutJSON(ctx, token, path, body, fingerprint); err != nil {
		if status, ok := lightroom.StatusCode(err); ok && status == http.StatusPreconditionFailed {
			return fmt.Errorf("%w: %s was already ingested", lightroom.ErrDuplicateContent, req.FileName)
		}
		return fmt.Errorf("create revision: %w", err)
	}
	return nil
}

func (o *Orchestrator) uploadMaster(ctx context.Context, token string, req UploadRequest, assetID, revisionID string) error {
	path := fmt.Sprintf("/v2/catalogs/%s/assets/%s/revisions/%s/master", req.CatalogID, assetID, revisionID)
	rng := lightroom.FullRange(len(req.Data))
	if err := o.client.PutMaster(ctx, token, path, "application/octet-stream", rng, req.Data); err != nil {
		return fmt.Errorf("upload master: %w", err)
	}
	return nil
}

// UploadImageToFirstProject uploads an image and attaches the resulting
// asset to the first project album owned by this integration. The
// workflow fails fast with ErrEmptyResult before any upload when no
// such project exists. An asset uploaded but not yet attached is not
// rolled back on attach failure.
func (o *Orchestrator) UploadImageToFirstProject(ctx context.Context, token string, req UploadRequest) (assetID, albumID string, err error) {
	projects, err := o.Projects(ctx, token, req.CatalogID)
	if err != nil {
		return "", "", err
	}
	if len(projects) == 0 {
		return "", "", fmt.Errorf("%w: no project albums belong to this integration", lightroom.ErrEmptyResult)
	}

	assetID, err = o.UploadImage(ctx, token, req)
	if err != nil {
		return "", "", err
	}

	albumID = projects[0].ID
	body := lightroom.AlbumAssets{Resources: []lightroom.AssetRef{{ID: assetID}}}
	path := fmt.Sprintf("/v2/catalogs/%s/albums/%s/assets", req.CatalogID, albumID)
	if _, err := o.client.PutJSON(ctx, token, path, body, ""); err != nil {
		return "", "", fmt.Errorf("attach asset to album %s: %w", albumID, err)
	}

	o.logger.Info("attached asset to project", "asset_id", assetID, "album_id", albumID)
	return assetID, albumID, nil
}
