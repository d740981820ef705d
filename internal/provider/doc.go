// Package provider composes the outbound chat-completion request: it detects
// the backend flavor from the base URL (OpenAI-compatible, Azure OpenAI or a
// Cloudflare AI gateway), resolves the endpoint and auth headers, selects one
// of the configured API keys and builds the streaming request body.
package provider
