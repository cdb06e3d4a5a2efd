package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/port"
)

// SessionTokenBytes is the entropy of a session token; hex encoding doubles the length.
const SessionTokenBytes = 32

// GenerateHexToken returns byteLength random bytes hex-encoded.
func GenerateHexToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", fmt.Errorf("length must be positive")
	}

	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// RandomTokenSource issues 64-character hex session tokens.
type RandomTokenSource struct{}

// NewSessionToken implements port.TokenSource.
func (RandomTokenSource) NewSessionToken() (string, error) {
	return GenerateHexToken(SessionTokenBytes)
}

var _ port.TokenSource = RandomTokenSource{}
