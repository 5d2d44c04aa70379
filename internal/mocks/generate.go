// Package mocks provides mock implementations for testing the console's action layer.
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
//	api := mocks.NewMockRequester(ctrl)
//	api.EXPECT().Do(gomock.Any(), gomock.Any()).Return(env, nil)
package mocks

// Generate mock for Requester interface from internal/apiclient package.
// This creates MockRequester with methods for all Requester interface methods:
// Do
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=requester_mock.go github.com/simbrella/cms-console/internal/apiclient Requester

// Generate mock for SessionStore interface from internal/ports package.
// This creates MockSessionStore with methods for all SessionStore interface methods:
// Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/simbrella/cms-console/internal/ports SessionStore

// Generate mock for SessionSupplier interface from internal/ports package.
// This creates MockSessionSupplier with methods for all SessionSupplier interface methods:
// Current
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_supplier_mock.go github.com/simbrella/cms-console/internal/ports SessionSupplier

// Generate mock for ViewInvalidator interface from internal/ports package.
// This creates MockViewInvalidator with methods for all ViewInvalidator interface methods:
// Invalidate
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=view_invalidator_mock.go github.com/simbrella/cms-console/internal/ports ViewInvalidator

// Generate mock for ViewCache interface from internal/ports package.
// This creates MockViewCache with methods for all ViewCache interface methods:
// Get, Put, Invalidate
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=view_cache_mock.go github.com/simbrella/cms-console/internal/ports ViewCache
