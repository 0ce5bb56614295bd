package session

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Sealer encrypts upstream tokens before they are written to a session
// store. An empty key produces a random per-process key, which means
// sessions do not survive a restart.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer creates a sealer from a 32-byte key given as raw characters
// or as 64 hex digits.
func NewSealer(key string) (*Sealer, error) {
	raw, err := decodeSealKey(key)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid seal key: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

func decodeSealKey(key string) ([]byte, error) {
	switch len(key) {
	case 0:
		raw := make([]byte, chacha20poly1305.KeySize)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("generate seal key: %w", err)
		}
		return raw, nil
	case chacha20poly1305.KeySize:
		return []byte(key), nil
	case 2 * chacha20poly1305.KeySize:
		raw, err := hex.DecodeString(key)
		if err != nil {
			return nil, fmt.Errorf("seal key is not valid hex: %w", err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("seal key must be %d raw bytes or %d hex characters, got %d characters",
			chacha20poly1305.KeySize, 2*chacha20poly1305.KeySize, len(key))
	}
}

// Seal encrypts a value and returns it base64-encoded. An empty value
// stays empty so optional tokens round-trip without growing.
func (s *Sealer) Seal(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal. It fails on tampered or
// foreign-key ciphertexts.
func (s *Sealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}
	if len(raw) < s.aead.NonceSize() {
		return "", fmt.Errorf("sealed value too short")
	}
	nonce, ciphertext := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("open sealed value: %w", err)
	}
	return string(plain), nil
}

// sealSession encrypts the token fields of a copy of the session.
func (s *Sealer) sealSession(sess *Session) (*Session, error) {
	cp := sess.clone()
	var err error
	if cp.AccessToken, err = s.Seal(sess.AccessToken); err != nil {
		return nil, err
	}
	if cp.RefreshToken, err = s.Seal(sess.RefreshToken); err != nil {
		return nil, err
	}
	return cp, nil
}

// openSession decrypts the token fields of a copy of the session.
func (s *Sealer) openSession(sess *Session) (*Session, error) {
	cp := sess.clone()
	var err error
	if cp.AccessToken, err = s.Open(sess.AccessToken); err != nil {
		return nil, err
	}
	if cp.RefreshToken, err = s.Open(sess.RefreshToken); err != nil {
		return nil, err
	}
	return cp, nil
}
