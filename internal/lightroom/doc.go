// Package lightroom is the HTTP client for the cloud photo-catalog
// service.
//
// Every authenticated call carries the integration API key (X-API-Key)
// and the caller's bearer token. JSON responses from the service are
// prefixed with a while(1){} guard that neutralizes cross-site script
// inclusion; the client strips exactly one occurrence before decoding
// and treats its absence as a malformed response.
//
// Writes go through PutJSON, which can attach a content fingerprint as
// an If-None-Match precondition so the service rejects duplicate
// content with 412, and PutMaster, which streams raw revision bytes
// with Content-Range framing and always asks the service to regenerate
// derived renditions.
//
// The client performs no retries and holds no state between calls;
// deadlines come from the supplied http.Client and context.
package lightroom
