// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - ProviderFixture: Pre-configured cloud.MockProvider for common scenarios
//   - MockProber, MockPlaybookRunner: testify mocks for SSH and ansible
//   - MockObserver: records provisioning events
//   - FakeTimer: drives retry loops without sleeping
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithName("VPN-test").
//	    WithRegion("fra1").
//	    Build()
//
//	provider := testing.NewProviderFixture().
//	    AddressAfter("VPN-test", "203.0.113.10", 3).
//	    Mock()
package testing
