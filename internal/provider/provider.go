package provider

import (
	"regexp"
	"strings"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/apierr"
)

const (
	DefaultBaseURL         = "https://api.openai.com"
	DefaultAzureAPIVersion = "2023-03-15-preview"

	azureDomain   = "openai.azure.com"
	gatewayDomain = "gateway.ai.cloudflare.com"
)

// Kind is the backend flavor inferred from the base URL
type Kind int

const (
	OpenAI Kind = iota
	Azure
	CloudflareGateway
)

func (k Kind) String() string {
	switch k {
	case Azure:
		return "azure"
	case CloudflareGateway:
		return "cloudflare-gateway"
	default:
		return "openai"
	}
}

// Settings are the endpoint-related parts of the user configuration
type Settings struct {
	APIURL         string
	APIVersion     string
	DeploymentName string
}

// Endpoint is a fully resolved chat-completions URL
type Endpoint struct {
	URL     string
	BaseURL string
	Kind    Kind
}

var schemeRe = regexp.MustCompile(`(?i)^[a-z]+://`)

// NormalizeBaseURL defaults an empty URL, prepends https:// when no scheme is
// given and strips one trailing slash.
func NormalizeBaseURL(raw string) string {
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !schemeRe.MatchString(raw) {
		raw = "https://" + raw
	}
	return strings.TrimSuffix(raw, "/")
}

// Detect infers the backend flavor from a normalized base URL
func Detect(baseURL string) Kind {
	switch {
	case strings.Contains(baseURL, azureDomain):
		return Azure
	case strings.Contains(baseURL, gatewayDomain):
		return CloudflareGateway
	default:
		return OpenAI
	}
}

// Resolve builds the chat-completions endpoint. Azure requires a deployment
// name and carries the api-version query parameter.
func Resolve(s Settings) (Endpoint, error) {
	base := NormalizeBaseURL(s.APIURL)
	kind := Detect(base)

	ep := Endpoint{BaseURL: base, Kind: kind}
	switch kind {
	case Azure:
		if s.DeploymentName == "" {
			return Endpoint{}, apierr.DeploymentMissing()
		}
		version := s.APIVersion
		if version == "" {
			version = DefaultAzureAPIVersion
		}
		ep.URL = base + "/openai/deployments/" + s.DeploymentName + "/chat/completions?api-version=" + version
	case CloudflareGateway:
		ep.URL = base + "/chat/completions"
	default:
		ep.URL = base + "/v1/chat/completions"
	}
	return ep, nil
}

// Headers returns the request headers for the given backend and key
func Headers(kind Kind, apiKey string) map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if kind == Azure {
		headers["api-key"] = apiKey
	} else {
		headers["Authorization"] = "Bearer " + apiKey
	}
	return headers
}
