package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the required length in bytes for application and profile keys.
const KeySize = 32

var (
	// ErrInvalidKey is returned when a key is not exactly KeySize bytes.
	ErrInvalidKey = errors.New("key must be 32 bytes")
	// ErrEncryptionFailed is returned when encryption cannot complete.
	ErrEncryptionFailed = errors.New("encryption failed")
	// ErrDecryptionFailed is returned for tampered, truncated, or
	// wrongly-keyed ciphertexts.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// hkdfInfo binds derived keys to this package's purpose so the same key
// material used elsewhere yields unrelated keys.
var hkdfInfo = []byte("walletkit/secrets/v1")

// GenerateKey returns a cryptographically secure random 32-byte key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return key, nil
}

// Encrypt seals plaintext with AES-256-GCM under a key derived from the
// application and profile keys. The random nonce is prepended to the
// returned ciphertext.
func Encrypt(appKey, profileKey, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(appKey, profileKey)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a ciphertext produced by Encrypt.
func Decrypt(appKey, profileKey, ciphertext []byte) ([]byte, error) {
	aead, err := newAEAD(appKey, profileKey)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < aead.NonceSize() {
		return nil, ErrDecryptionFailed
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// EncryptString encrypts a string and returns the ciphertext base64-encoded.
func EncryptString(appKey, profileKey []byte, plaintext string) (string, error) {
	ciphertext, err := Encrypt(appKey, profileKey, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString reverses EncryptString.
func DecryptString(appKey, profileKey []byte, encoded string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	plaintext, err := Decrypt(appKey, profileKey, ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// newAEAD derives the compound key and constructs the GCM cipher.
// The derived key is wiped before returning.
func newAEAD(appKey, profileKey []byte) (cipher.AEAD, error) {
	if len(appKey) != KeySize || len(profileKey) != KeySize {
		return nil, ErrInvalidKey
	}

	derived := make([]byte, KeySize)
	kdf := hkdf.New(sha256.New, appKey, profileKey, hkdfInfo)
	if _, err := io.ReadFull(kdf, derived); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	defer wipe(derived)

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return aead, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
