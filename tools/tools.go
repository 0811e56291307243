//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are run via `go run` or installed globally and are not tracked in go.mod.
package tools

// Development tools:
//
// Air - Live reload while editing templates and handlers
//   Install: go install github.com/air-verse/air@v1.63.0
//   Run:     air --build.cmd "go build -o ./tmp/schoolsite ./cmd/schoolsite" --build.bin ./tmp/schoolsite
//
// mockgen - Regenerates internal/mocks from the ports interfaces
//   Run: go generate ./internal/mocks
