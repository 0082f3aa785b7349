package providers

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// FailureReason groups invocation failures for logging.
type FailureReason string

const (
	// FailureReasonAuth indicates authentication failure (401, 403, invalid API key).
	FailureReasonAuth FailureReason = "auth"

	// FailureReasonRateLimit indicates rate limiting (429).
	FailureReasonRateLimit FailureReason = "rate_limit"

	// FailureReasonBilling indicates billing/quota issues (payment required, quota exceeded).
	FailureReasonBilling FailureReason = "billing"

	// FailureReasonNetwork indicates network connectivity issues.
	FailureReasonNetwork FailureReason = "network"

	// FailureReasonServer indicates server errors (5xx).
	FailureReasonServer FailureReason = "server"

	// FailureReasonEmpty indicates a 2xx reply without usable text.
	FailureReasonEmpty FailureReason = "empty"

	// FailureReasonClient indicates any other 4xx reply.
	FailureReasonClient FailureReason = "client"

	// FailureReasonUnknown indicates unknown error type.
	FailureReasonUnknown FailureReason = "unknown"
)

// ErrorClassification contains error classification details.
type ErrorClassification struct {
	Reason     FailureReason
	StatusCode int
	Message    string
}

// ClassifyError analyzes an invocation error. It never influences control flow;
// the result only decorates log entries.
func ClassifyError(err error) ErrorClassification {
	if err == nil {
		return ErrorClassification{Reason: FailureReasonUnknown, Message: "no error"}
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return classifyStatus(upstream.StatusCode, upstream.Body)
	}

	var empty *EmptyResponseError
	if errors.As(err, &empty) {
		return ErrorClassification{Reason: FailureReasonEmpty, Message: "empty response"}
	}

	var network *NetworkError
	if errors.As(err, &network) {
		msg := "network error"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "request timeout"
		} else if errors.Is(err, context.Canceled) {
			msg = "request canceled"
		}
		return ErrorClassification{Reason: FailureReasonNetwork, Message: msg}
	}

	return ErrorClassification{Reason: FailureReasonUnknown, Message: err.Error()}
}

func classifyStatus(statusCode int, body string) ErrorClassification {
	out := ErrorClassification{StatusCode: statusCode}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		out.Reason, out.Message = FailureReasonAuth, "authentication failed"
		return out
	case http.StatusTooManyRequests:
		out.Reason, out.Message = FailureReasonRateLimit, "rate limit exceeded"
		return out
	case http.StatusPaymentRequired:
		out.Reason, out.Message = FailureReasonBilling, "billing or quota issue"
		return out
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		out.Reason, out.Message = FailureReasonServer, "service temporarily unavailable"
		return out
	}

	if statusCode >= 500 && statusCode < 600 {
		out.Reason, out.Message = FailureReasonServer, "server error"
		return out
	}

	// Some providers answer 400 for key and quota problems.
	lower := strings.ToLower(body)
	switch {
	case containsAny(lower, []string{"invalid api key", "invalid_api_key", "api_key_invalid", "unauthorized"}):
		out.Reason, out.Message = FailureReasonAuth, "authentication error"
	case containsAny(lower, []string{"rate limit", "rate_limit", "too many requests", "resource_exhausted"}):
		out.Reason, out.Message = FailureReasonRateLimit, "rate limit error"
	case containsAny(lower, []string{"quota", "billing", "insufficient", "credits"}):
		out.Reason, out.Message = FailureReasonBilling, "billing or quota error"
	default:
		out.Reason, out.Message = FailureReasonClient, "request rejected"
	}
	return out
}

// containsAny checks if the string contains any of the substrings.
func containsAny(s string, substrs []string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
