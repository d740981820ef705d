package apierr

import (
	"errors"
	"fmt"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/i18n"
)

// Kind classifies a terminal translation error
type Kind string

const (
	KindUnsupportedLanguage Kind = "unsupportLanguage"
	KindParam               Kind = "param"
	KindSecretKey           Kind = "secretKey"
	KindAPI                 Kind = "api"
	KindUnknown             Kind = "unknown"
)

// Message ids. They are passed through i18n.T when an Error is built.
const (
	MsgUnsupportedLanguage = "目前仅支持英汉词典"
	MsgCustomModelMissing  = "配置错误 - 请确保您在插件配置中填入了正确的自定义模型名称"
	HintCustomModelMissing = "请在插件配置中填写自定义模型名称"
	MsgAPIKeysInvalid      = "配置错误 - 请确保您在插件配置中填入了正确的 API Keys"
	HintAPIKeysMissing     = "请在插件配置中填写 API Keys"
	HintAPIKeysInvalid     = "请在插件配置中填写正确的 API Keys"
	MsgDeploymentMissing   = "配置错误 - 未填写 Deployment Name"
	HintDeploymentMissing  = "请在插件配置中填写 Deployment Name"
	MsgNoResult            = "接口未返回结果"
	MsgParseFailed         = "Failed to parse JSON"
	MsgUnknown             = "未知错误"
)

// Error is the terminal error record of a translation
type Error struct {
	Kind    Kind   `json:"type"`
	Message string `json:"message"`
	Detail  string `json:"addition,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
}

// New builds an Error, localizing message
func New(kind Kind, message, detail string) *Error {
	return &Error{Kind: kind, Message: i18n.T(message), Detail: detail}
}

// As returns the *Error in err's chain, if any
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err carries an Error of the given kind
func Is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// UnsupportedLanguage reports a language pair other than en -> zh-Hans
func UnsupportedLanguage() *Error {
	return New(KindUnsupportedLanguage, MsgUnsupportedLanguage, "")
}

// CustomModelMissing reports model "custom" without a custom model name
func CustomModelMissing() *Error {
	return New(KindParam, MsgCustomModelMissing, i18n.T(HintCustomModelMissing))
}

// APIKeysMissing reports an empty API key list
func APIKeysMissing() *Error {
	return New(KindSecretKey, MsgAPIKeysInvalid, i18n.T(HintAPIKeysMissing))
}

// InvalidToken reports a stream fragment that rejected the credential
func InvalidToken() *Error {
	return New(KindSecretKey, MsgAPIKeysInvalid, i18n.T(HintAPIKeysInvalid))
}

// DeploymentMissing reports an Azure endpoint without a deployment name
func DeploymentMissing() *Error {
	return New(KindSecretKey, MsgDeploymentMissing, i18n.T(HintDeploymentMissing))
}

// NoResult reports a stream record without choices; payload is kept as detail
func NoResult(payload string) *Error {
	return New(KindAPI, MsgNoResult, payload)
}

// ParseFailed reports a stream record that is not valid JSON
func ParseFailed(payload string, err error) *Error {
	detail := payload
	if err != nil {
		detail = fmt.Sprintf("%v: %s", err, payload)
	}
	return New(KindParam, MsgParseFailed, detail)
}

// Unknown wraps a transport failure. An Error already in the chain is kept.
func Unknown(err error) *Error {
	if e, ok := As(err); ok {
		return e
	}
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return New(KindUnknown, MsgUnknown, detail)
}
