package dialect

import "errors"

var (
	// ErrNotFound means the referenced content does not exist or is not
	// visible to the bot. Routine for private repositories; skipped silently.
	ErrNotFound = errors.New("referenced content not found")

	// ErrForbidden means the remote refused access to existing content.
	ErrForbidden = errors.New("referenced content forbidden")

	// ErrInvalidCredential means a configured secret was rejected. This is a
	// configuration problem, not a transient failure, and is never retried.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrTooLarge means the rendered preview would exceed the platform
	// message-size ceiling. The preview is dropped rather than truncated.
	ErrTooLarge = errors.New("rendered preview exceeds message size limit")
)
