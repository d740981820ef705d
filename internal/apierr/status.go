package apierr

import (
	"net/http"
	"strconv"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/i18n"
)

// RateLimitMessage is shown for HTTP 429 instead of the generic reason phrase.
const RateLimitMessage = "请求过于频繁，请慢一点。OpenAI 对您在 API 上的请求实施速率限制。这些限制适用于每分钟 tokens 数、每分钟请求数（某些情况下是每天请求数）。访问 https://platform.openai.com/account/rate-limits 了解更多信息，或参考 OpenAI 模型的默认速率限制"

var statusReasons = map[int]string{
	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Payload Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	416: "Range Not Satisfiable",
	417: "Expectation Failed",
	418: "I'm a teapot",
	421: "Misdirected Request",
	422: "Unprocessable Entity",
	423: "Locked",
	424: "Failed Dependency",
	425: "Too Early",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: RateLimitMessage,
	431: "Request Header Fields Too Large",
	451: "Unavailable For Legal Reasons",
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
	506: "Variant Also Negotiates",
	507: "Insufficient Storage",
	508: "Loop Detected",
	510: "Not Extended",
	511: "Network Authentication Required",
}

// StatusMessage returns the localized reason for an HTTP status code.
// Codes outside the table fall back to net/http's text, then to the number.
func StatusMessage(code int) string {
	if reason, ok := statusReasons[code]; ok {
		return i18n.T(reason)
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return strconv.Itoa(code)
}

// FromStatus classifies a failed HTTP response: 4xx is a parameter error,
// anything else an API error.
func FromStatus(code int, detail string) *Error {
	kind := KindAPI
	if code >= 400 && code < 500 {
		kind = KindParam
	}
	return &Error{Kind: kind, Message: StatusMessage(code), Detail: detail}
}
