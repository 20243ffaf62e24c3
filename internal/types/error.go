package types

import "fmt"

// Error kinds surfaced to clients through the httpapi envelope.
const (
	KindBadInput        = "bad_input"
	KindNotFound        = "not_found"
	KindUpstreamFailure = "upstream_failure"
	KindConfigMissing   = "config_missing"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// BadInput covers a missing body, a missing required field, or an empty
// search term.
func BadInput(message string) *CustomError {
	return &CustomError{Code: 400, Message: message, Type: KindBadInput}
}

// NotFound covers an unknown id passed to GetGame. GetMetadata never raises
// this; it returns a null-payload DataResponse instead.
func NotFound(message string) *CustomError {
	return &CustomError{Code: 404, Message: message, Type: KindNotFound}
}

// UpstreamFailure covers a non-2xx upstream response, a malformed body, or a
// count-parse failure. No partial data is committed when this is raised.
func UpstreamFailure(message string) *CustomError {
	return &CustomError{Code: 502, Message: message, Type: KindUpstreamFailure}
}

// ConfigMissing is fatal: raised by ConfigureWebhooks when WebHookRootAddress
// or WebHookSecret is absent.
func ConfigMissing(message string) *CustomError {
	return &CustomError{Code: 500, Message: message, Type: KindConfigMissing}
}

// IsNotFound reports whether err is a NotFound CustomError.
func IsNotFound(err error) bool {
	ce, ok := err.(*CustomError)
	return ok && ce.Type == KindNotFound
}

// IsBadInput reports whether err is a BadInput CustomError.
func IsBadInput(err error) bool {
	ce, ok := err.(*CustomError)
	return ok && ce.Type == KindBadInput
}
