// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - NodeBuilder: Fluent builder for node definitions
//   - ClientFixture: Pre-configured mock CloudSigma clients for common scenarios
//
// Usage:
//
//	def := testing.NewNodeBuilder().
//	    WithName("worker").
//	    WithContext("#cloud-config").
//	    Build()
//
//	mock := testing.NewClientFixture().ServerStatuses("stopped", "running")
package testing
