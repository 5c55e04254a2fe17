package port

import (
	"context"
	"errors"
)

var (
	// ErrVerifierRequestFailed indicates the profile API could not be reached or answered abnormally.
	ErrVerifierRequestFailed = errors.New("profile verifier: request failed")
	// ErrVerifierInvalidCredential indicates the bearer credential was rejected upstream.
	ErrVerifierInvalidCredential = errors.New("profile verifier: invalid or expired credential")
	// ErrVerifierMalformedResponse indicates the profile API answered with an undecodable payload.
	ErrVerifierMalformedResponse = errors.New("profile verifier: malformed response")
)

// VerifiedProfile is the account identity reported by the Minecraft profile API.
type VerifiedProfile struct {
	// UUID is the canonical hyphenated lower-case account UUID.
	UUID string
	// Username may be empty when the upstream omits it.
	Username string
}

// ProfileVerifier proves ownership of a Minecraft account from a bearer credential.
type ProfileVerifier interface {
	Verify(ctx context.Context, bearer string) (VerifiedProfile, error)
}
