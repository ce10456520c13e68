// Package webhook verifies the authenticity of inbound deployment webhooks.
//
// Verification is HMAC-SHA256 over the exact raw request body, keyed by a
// pre-shared secret and compared in constant time. The signature travels in
// a configurable HTTP header as hex, with or without a "sha256=" prefix.
//
// # Policy
//
// The enforcement policy is a deliberate two-state switch, not an accident
// of control flow:
//
//   - secret unset: verification is disabled; every request is accepted.
//     Intended for local development and trusted-network deployments.
//   - secret set: a valid signature is required on every request. A missing
//     header is rejected just like a bad one — configuring a secret and then
//     accepting unsigned requests would make the secret decorative.
//
// All failures return the same generic error so responses cannot be used to
// probe which check failed.
package webhook
