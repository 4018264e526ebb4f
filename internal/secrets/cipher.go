// Package secrets encrypts PII fields before they reach the record store.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

// Cipher performs authenticated symmetric encryption of short text
// fields. Output is base64 so it can live in a spreadsheet cell or a
// text column.
type Cipher struct {
	key [keySize]byte
}

// NewCipher creates a cipher from a hex-encoded 32-byte key.
func NewCipher(hexKey string) (*Cipher, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key is not valid hex: %w", err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", keySize, len(raw))
	}

	c := &Cipher{}
	copy(c.key[:], raw)
	return c, nil
}

// NewCipherFromEnv reads the key from ENCRYPTION_KEY.
func NewCipherFromEnv() (*Cipher, error) {
	hexKey := os.Getenv("ENCRYPTION_KEY")
	if hexKey == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY is required but not set")
	}
	return NewCipher(hexKey)
}

// Encrypt seals plaintext under a fresh random nonce. The nonce is
// prepended to the ciphertext before base64 encoding.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &c.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Tampered or truncated input fails.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("ciphertext is not valid base64: %w", err)
	}
	if len(sealed) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &c.key)
	if !ok {
		return "", fmt.Errorf("decryption failed")
	}
	return string(plaintext), nil
}
