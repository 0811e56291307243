// Package mocks provides mock implementations of the ports for testing the school site front end.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	client := mocks.NewMockAPIClient(ctrl)
//	client.EXPECT().Send(gomock.Any(), gomock.Any()).Return(&api.Response{Status: 200}, nil)
package mocks

// Generate mocks for the backend ports: APIClient (Send) and CredentialSource (Credential, Clear).
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=backend_mock.go github.com/target/schoolsite-ui/internal/ports APIClient,CredentialSource

// Generate mock for SessionStore interface: Save, Get, Delete.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/target/schoolsite-ui/internal/ports SessionStore
