// Package ingest composes the client primitives into the asset
// ingestion workflows: listing and creating project albums, uploading
// an image as a revision plus binary master, and attaching the result
// to the integration's first project.
//
// Workflows are strictly sequential with no internal concurrency and
// hold no state between invocations beyond the identifiers they
// generate locally. Failed multi-step workflows do not roll back
// completed steps; a revision whose master upload failed is left on the
// service, and callers should query before retrying.
package ingest
