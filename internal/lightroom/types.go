package lightroom

// Account identifies the caller on the remote service.
type Account struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Catalog is the caller's top-level asset container.
type Catalog struct {
	ID      string         `json:"id"`
	Payload CatalogPayload `json:"payload"`
}

// CatalogPayload carries the user-visible catalog metadata.
type CatalogPayload struct {
	Name string `json:"name"`
}

// PublishInfo marks an album as managed by a partner integration. An
// album belongs to this integration iff ServiceID equals the configured
// API key.
type PublishInfo struct {
	Version   int    `json:"version"`
	ServiceID string `json:"serviceId"`
}

// AlbumPayload carries album metadata as stored by the service.
type AlbumPayload struct {
	Name        string       `json:"name,omitempty"`
	UserCreated string       `json:"userCreated,omitempty"`
	UserUpdated string       `json:"userUpdated,omitempty"`
	PublishInfo *PublishInfo `json:"publishInfo,omitempty"`
}

// Album is a named collection of assets. Projects are albums with
// subtype "project".
type Album struct {
	ID      string       `json:"id"`
	Subtype string       `json:"subtype"`
	Payload AlbumPayload `json:"payload"`
}

type albumsResponse struct {
	Resources []Album `json:"resources"`
}

// AlbumCreate is the write body for creating a project album.
type AlbumCreate struct {
	Subtype string       `json:"subtype"`
	Payload AlbumPayload `json:"payload"`
}

// RevisionCreate is the write body for creating an asset revision.
type RevisionCreate struct {
	Subtype string          `json:"subtype"`
	Payload RevisionPayload `json:"payload"`
}

// RevisionPayload carries the revision's import metadata.
type RevisionPayload struct {
	UserCreated  string       `json:"userCreated"`
	UserUpdated  string       `json:"userUpdated"`
	CaptureDate  string       `json:"captureDate"`
	ImportSource ImportSource `json:"importSource"`
}

// ImportSource records where a revision's master came from.
type ImportSource struct {
	FileName         string `json:"fileName"`
	ImportTimestamp  string `json:"importTimestamp"`
	ImportedBy       string `json:"importedBy"`
	ImportedOnDevice string `json:"importedOnDevice"`
}

// AlbumAssets is the write body for attaching assets to an album.
type AlbumAssets struct {
	Resources []AssetRef `json:"resources"`
}

// AssetRef references an asset by its generated identifier.
type AssetRef struct {
	ID string `json:"id"`
}
