package security

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/port"
)

const (
	fernetVersion byte = 0x80
	// version | timestamp | iv | one AES block | hmac
	fernetMinDecoded = 1 + 8 + 16 + 16 + 32
	// stored passwords never expire
	fernetNoTTL time.Duration = -1
)

// FernetCipher encrypts stored passwords as Fernet tokens so rows written by
// earlier deployments sharing the same SECRET_KEY stay readable.
type FernetCipher struct {
	key  *fernet.Key
	keys []*fernet.Key
}

// NewFernetCipher parses a base64 encoded 32-byte key.
func NewFernetCipher(encodedKey string) (*FernetCipher, error) {
	encodedKey = strings.TrimSpace(encodedKey)
	if encodedKey == "" {
		return nil, fmt.Errorf("%w: secret key is empty", domain.ErrConfiguration)
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: decode secret key: %v", domain.ErrConfiguration, err)
	}

	return &FernetCipher{key: key, keys: []*fernet.Key{key}}, nil
}

// GenerateFernetKey returns a fresh key in the encoding NewFernetCipher expects.
func GenerateFernetKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return key.Encode(), nil
}

// Encrypt seals plaintext under a random IV.
func (c *FernetCipher) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), c.key)
	if err != nil {
		return "", fmt.Errorf("%w: encrypt: %v", domain.ErrCipher, err)
	}
	return string(token), nil
}

// Decrypt verifies and opens a token produced by Encrypt. Tokens never expire.
func (c *FernetCipher) Decrypt(ciphertext string) (string, error) {
	ciphertext = strings.TrimSpace(ciphertext)

	raw, err := base64.URLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: decode token: %v", domain.ErrCipher, err)
	}
	if len(raw) < fernetMinDecoded || raw[0] != fernetVersion {
		return "", fmt.Errorf("%w: malformed token", domain.ErrCipher)
	}

	plain := fernet.VerifyAndDecrypt([]byte(ciphertext), fernetNoTTL, c.keys)
	if plain == nil {
		return "", fmt.Errorf("%w: token failed verification", domain.ErrCipher)
	}

	return string(plain), nil
}

var _ port.CredentialCipher = (*FernetCipher)(nil)
