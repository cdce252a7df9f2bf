package awsbill

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

var (
	// ErrCredentials indicates AWS credentials are missing, expired, or rejected.
	ErrCredentials = errors.New("awsbill: credentials missing or invalid")
	// ErrThrottled indicates the billing API rate limit was hit.
	ErrThrottled = errors.New("awsbill: throttled by AWS")
	// ErrTimeout indicates a fetch attempt exceeded its bounded wait.
	ErrTimeout = errors.New("awsbill: request timed out")
)

// classify wraps an SDK error with the matching sentinel so callers can
// branch with errors.Is without depending on AWS error codes.
func classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, op)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException", "InvalidClientTokenId",
			"ExpiredTokenException", "AccessDeniedException",
			"UnauthorizedOperation":
			return fmt.Errorf("%w: %s: %v", ErrCredentials, op, err)
		case "ThrottlingException", "Throttling", "TooManyRequestsException",
			"LimitExceededException", "RequestLimitExceeded":
			return fmt.Errorf("%w: %s: %v", ErrThrottled, op, err)
		}
	}

	return fmt.Errorf("awsbill: %s: %w", op, err)
}

// Hint returns a short operator-facing description for an error, used by
// the offline indicator in the widget footer.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrCredentials):
		return "check AWS credentials"
	case errors.Is(err, ErrThrottled):
		return "rate limited"
	case errors.Is(err, ErrTimeout):
		return "request timed out"
	default:
		return "fetch failed"
	}
}
