package port

// CredentialCipher reversibly protects stored passwords with a process-wide key.
type CredentialCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// TokenSource produces opaque session tokens.
type TokenSource interface {
	NewSessionToken() (string, error)
}
