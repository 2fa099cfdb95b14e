package page

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the wait/act primitives. Wrapped errors
// carry the locator and timeout for diagnosability; use
// errors.Is to classify.
var (
	// ErrElementNotFound means no element matched the locator
	// within the timeout.
	ErrElementNotFound = errors.New("element not found")

	// ErrElementNotVisible means the element was located but
	// never became visible within the timeout.
	ErrElementNotVisible = errors.New("element not visible")

	// ErrStillVisible means the element did not disappear
	// within the timeout.
	ErrStillVisible = errors.New("element still visible")

	// ErrClickFailed means the click could not be dispatched.
	ErrClickFailed = errors.New("click failed")

	// ErrPageNotReady means the document never reported a
	// complete ready state within the timeout.
	ErrPageNotReady = errors.New("page not ready")
)

func notFoundErr(loc Locator, timeout time.Duration) error {
	return fmt.Errorf("%w: %s after %v", ErrElementNotFound, loc, timeout)
}

func notVisibleErr(loc Locator, timeout time.Duration) error {
	return fmt.Errorf("%w: %s after %v", ErrElementNotVisible, loc, timeout)
}

func stillVisibleErr(loc Locator, timeout time.Duration) error {
	return fmt.Errorf("%w: %s after %v", ErrStillVisible, loc, timeout)
}

func clickErr(loc Locator, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrClickFailed, loc, cause)
}
