package upload

import (
	"context"
	"net/http"

	"market-ingest/feature/access"
	"market-ingest/feature/upload/schema"
)

// Response is a terminal pipeline result, transport-agnostic. A nil
// response from a behavior means "continue to the next behavior".
type Response struct {
	Code    int
	Message string
}

// SuccessResponse is the generic acceptance result. Suppressed uploads and
// uploads with nothing applicable return it too: callers must not be able
// to distinguish those cases.
func SuccessResponse() *Response {
	return &Response{Code: http.StatusOK, Message: "Success"}
}

// BadRequestResponse rejects a payload wholesale.
func BadRequestResponse() *Response {
	return &Response{Code: http.StatusBadRequest}
}

// ForbiddenResponse rejects an unauthorized credential.
func ForbiddenResponse() *Response {
	return &Response{Code: http.StatusForbidden}
}

// Behavior is one pluggable step of the upload pipeline. Behaviors run in
// registration order; the first one returning a non-nil Response
// short-circuits the pipeline.
type Behavior interface {
	// ShouldExecute decides applicability for the payload. It may
	// normalize the payload in place (e.g. filter out-of-bounds records).
	ShouldExecute(params *schema.UploadParameters) bool
	// Execute processes the payload on behalf of an authorized source.
	// A nil Response with nil error passes control to the next behavior.
	Execute(ctx context.Context, source *access.TrustedSource, params *schema.UploadParameters) (*Response, error)
}
