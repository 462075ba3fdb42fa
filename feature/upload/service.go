package upload

import (
	"context"

	"market-ingest/core/hash"
	"market-ingest/feature/access"
	"market-ingest/feature/upload/schema"

	"go.uber.org/zap"
)

// AccessGate resolves credentials and suppression state. Satisfied by
// *access.Store.
type AccessGate interface {
	GetTrustedSource(ctx context.Context, apiKeyHash string) (*access.TrustedSource, error)
	IsSuppressed(ctx context.Context, uploaderIDHash string) (bool, error)
	IncrementUploadCount(ctx context.Context, apiKeyHash string) error
}

// Service runs the upload pipeline: source authentication, uploader
// suppression, and the ordered behavior chain.
type Service struct {
	gate      AccessGate
	behaviors []Behavior
	logger    *zap.Logger
}

// NewService creates the upload service. Behaviors execute in the given
// order.
func NewService(gate AccessGate, behaviors []Behavior, logger *zap.Logger) *Service {
	return &Service{gate: gate, behaviors: behaviors, logger: logger}
}

// ProcessUpload runs one payload through the pipeline and returns the
// terminal response. A non-nil error is a storage failure and maps to a
// transport-level error; every policy outcome is a Response.
func (s *Service) ProcessUpload(ctx context.Context, apiKey string, params *schema.UploadParameters) (*Response, error) {
	source, err := s.gate.GetTrustedSource(ctx, hash.SHA256(apiKey))
	if err != nil {
		return nil, err
	}
	if source == nil {
		return ForbiddenResponse(), nil
	}

	// The raw uploader identifier never travels past this point.
	params.UploaderID = hash.SHA256(params.UploaderID)

	suppressed, err := s.gate.IsSuppressed(ctx, params.UploaderID)
	if err != nil {
		return nil, err
	}
	if suppressed {
		// Report success without processing anything: suppression must
		// not be observable from the response.
		return SuccessResponse(), nil
	}

	for _, behavior := range s.behaviors {
		if !behavior.ShouldExecute(params) {
			continue
		}
		resp, err := behavior.Execute(ctx, source, params)
		if err != nil {
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}
	}

	// Attribution counter only; failures must not reject an already
	// accepted upload.
	if err := s.gate.IncrementUploadCount(ctx, source.APIKeyHash); err != nil {
		s.logger.Warn("Failed to increment upload count",
			zap.String("source", source.Name),
			zap.Error(err),
		)
	}

	return SuccessResponse(), nil
}
