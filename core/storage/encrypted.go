package storage

import (
	"context"
	"errors"

	"github.com/finwallet/walletkit/pkg/secrets"
)

// EncryptedStorage decorates another Storage so values are encrypted at
// rest. Keys remain plaintext; only values are sealed.
type EncryptedStorage struct {
	inner      Storage
	appKey     []byte
	profileKey []byte
}

// NewEncryptedStorage wraps inner with secrets-based encryption. Both keys
// must be secrets.KeySize bytes.
func NewEncryptedStorage(inner Storage, appKey, profileKey []byte) (*EncryptedStorage, error) {
	if inner == nil {
		return nil, errors.New("inner storage is required")
	}
	if len(appKey) != secrets.KeySize || len(profileKey) != secrets.KeySize {
		return nil, secrets.ErrInvalidKey
	}
	return &EncryptedStorage{inner: inner, appKey: appKey, profileKey: profileKey}, nil
}

// Load implements Storage. A value that cannot be decrypted is reported as
// a storage failure rather than returned as garbage.
func (s *EncryptedStorage) Load(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.inner.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	plaintext, err := secrets.Decrypt(s.appKey, s.profileKey, sealed)
	if err != nil {
		return nil, errors.Join(ErrStorageFailed, err)
	}
	return plaintext, nil
}

// Save implements Storage.
func (s *EncryptedStorage) Save(ctx context.Context, key string, value []byte) error {
	sealed, err := secrets.Encrypt(s.appKey, s.profileKey, value)
	if err != nil {
		return errors.Join(ErrStorageFailed, err)
	}
	return s.inner.Save(ctx, key, sealed)
}

// Delete implements Storage.
func (s *EncryptedStorage) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
