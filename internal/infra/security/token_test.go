package security

import (
	"encoding/hex"
	"testing"
)

func TestRandomTokenSourceFormat(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 16; i++ {
		token, err := RandomTokenSource{}.NewSessionToken()
		if err != nil {
			t.Fatalf("NewSessionToken returned error: %v", err)
		}
		if len(token) != 64 {
			t.Fatalf("expected 64 characters, got %d", len(token))
		}
		if _, err := hex.DecodeString(token); err != nil {
			t.Fatalf("token is not hex: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token generated")
		}
		seen[token] = struct{}{}
	}
}

func TestGenerateHexTokenRejectsNonPositiveLength(t *testing.T) {
	if _, err := GenerateHexToken(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}
