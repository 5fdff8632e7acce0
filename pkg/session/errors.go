package session

import "errors"

// Session errors.
var (
	// ErrNotFound is returned when a key or stored session does not exist.
	ErrNotFound = errors.New("session: not found")

	// ErrNoSecret is returned when a signing codec is built without a secret.
	ErrNoSecret = errors.New("session: secret required")

	// ErrBadSecret is returned when the secret is shorter than MinSecretLength.
	ErrBadSecret = errors.New("session: secret too short")

	// ErrInvalidSignature is returned when a cookie value fails signature verification.
	ErrInvalidSignature = errors.New("session: invalid signature")

	// ErrDecrypt is returned when a signed payload cannot be decrypted.
	ErrDecrypt = errors.New("session: decryption failed")

	// ErrInvalidPayload is returned when decoded content is not a JSON object.
	ErrInvalidPayload = errors.New("session: invalid payload")

	// ErrTypeMismatch is returned by Value when the stored value has another type.
	ErrTypeMismatch = errors.New("session: type mismatch")
)
