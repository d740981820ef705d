// Package models lists the chat models available to the configured API key,
// so users can pick a value for --model. It speaks to OpenAI, Azure OpenAI
// and Cloudflare gateways through go-openai.
package models
