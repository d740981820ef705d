// Package testutil holds shared fixtures for tests: SSE record builders,
// fragment splitters and a mock chat-completions server.
package testutil
