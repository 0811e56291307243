package ports

import (
	"context"

	"github.com/target/schoolsite-ui/internal/domain/api"
)

// APIClient dispatches a call to the content backend.
// Implementations map non-2xx answers and transport failures to *errors.AppError.
type APIClient interface {
	Send(ctx context.Context, req api.Request) (*api.Response, error)
}

// CredentialSource gives the authenticated API client access to the current
// session's credential and lets it end the session after a 401.
type CredentialSource interface {
	Credential(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}
