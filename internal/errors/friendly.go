package errors

import (
	"fmt"
	"strings"
)

// UserFriendlyError provides actionable error messages for end users
type UserFriendlyError struct {
	Message    string // User-facing message explaining what went wrong
	Suggestion string // Actionable steps to fix the issue
	Details    error  // Original error for debugging/logs
}

func (e *UserFriendlyError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString("How to fix:\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *UserFriendlyError) Unwrap() error {
	return e.Details
}

// NewFriendlyError creates a user-friendly error
func NewFriendlyError(message, suggestion string) *UserFriendlyError {
	return &UserFriendlyError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// WithDetails adds the underlying error details
func (e *UserFriendlyError) WithDetails(err error) *UserFriendlyError {
	e.Details = err
	return e
}

// Common error constructors for frequently encountered issues

// NetworkError returns a network-related error with helpful suggestions
func NetworkError(err error) *UserFriendlyError {
	msg := "Cannot reach the serving proxy"
	suggestion := "Check your connection and proxy.base_url, then try again"

	if err != nil {
		errStr := err.Error()

		if strings.Contains(errStr, "no such host") || strings.Contains(errStr, "name resolution") {
			msg = "Cannot resolve the proxy hostname - DNS lookup failed"
			suggestion = "1. Check proxy.base_url in your config\n2. Verify DNS settings\n3. Try: ping <proxy host>"
		}

		if strings.Contains(errStr, "connection refused") {
			msg = "The proxy refused the connection"
			suggestion = "The proxy may be down or listening on a different port. Check proxy.base_url."
		}

		if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
			msg = "Request to the proxy timed out"
			suggestion = "The proxy is slow or unreachable. Try:\n1. Increase network.timeout_seconds\n2. Try again later"
		}

		if strings.Contains(errStr, "certificate") || strings.Contains(errStr, "x509") {
			msg = "TLS certificate verification failed"
			suggestion = "You may be behind a corporate proxy. Verify the certificate chain for proxy.base_url."
		}
	}

	return &UserFriendlyError{
		Message:    msg,
		Suggestion: suggestion,
		Details:    err,
	}
}

// AuthError returns authentication-related errors with key setup guidance
func AuthError(statusCode int, err error) *UserFriendlyError {
	msg := fmt.Sprintf("The proxy rejected your access token (%d)", statusCode)
	suggestion := "1. Set your key in the variable named by proxy.token_env\n" +
		"2. Generate a key in the proxy admin panel (Virtual Keys)\n" +
		"3. Pass --key to override the environment"

	if statusCode == 403 {
		msg = "Your access token lacks permission for this operation"
		suggestion = "Settings writes require an admin key. Check proxy.admin_view and the key's role."
	}

	return &UserFriendlyError{
		Message:    msg,
		Suggestion: suggestion,
		Details:    err,
	}
}

// DecodeError returns a structured error for malformed proxy responses
func DecodeError(endpoint string, err error) *UserFriendlyError {
	return &UserFriendlyError{
		Message:    fmt.Sprintf("The proxy returned an unexpected payload from %s", endpoint),
		Suggestion: "The proxy version may be incompatible with this client. Check the proxy release notes.",
		Details:    err,
	}
}

// ConfigError returns configuration-related errors
func ConfigError(field, issue string) *UserFriendlyError {
	return &UserFriendlyError{
		Message:    fmt.Sprintf("Configuration error in field '%s': %s", field, issue),
		Suggestion: "Run 'modelhub config validate' to check your configuration",
	}
}

// DatabaseError returns cache database errors with recovery suggestions
func DatabaseError(err error) *UserFriendlyError {
	msg := "Cache database error"
	suggestion := "Delete the cache and let it rebuild: rm -r <cache.data_root>"

	if err != nil {
		errStr := err.Error()

		if strings.Contains(errStr, "locked") {
			msg = "Cache database is locked by another process"
			suggestion = "Close other modelhub instances and try again"
		}

		if strings.Contains(errStr, "corrupt") || strings.Contains(errStr, "malformed") {
			msg = "Cache database is corrupted"
			suggestion = "Remove <cache.data_root>/hub.db; it will be repopulated on the next fetch"
		}
	}

	return &UserFriendlyError{
		Message:    msg,
		Suggestion: suggestion,
		Details:    err,
	}
}
