// Package secrets provides AES-256-GCM encryption with compound key
// derivation for data the wallet client keeps at rest, most notably the
// persisted bearer token.
//
// Two 32-byte keys feed an HKDF (SHA-256) derivation: an application key
// shared across the installation and a profile key specific to the local
// wallet profile. The derived key never leaves this package and is wiped
// after each operation.
//
//	appKey, _ := secrets.GenerateKey()
//	profileKey, _ := secrets.GenerateKey()
//
//	ciphertext, err := secrets.EncryptString(appKey, profileKey, token)
//	plaintext, err := secrets.DecryptString(appKey, profileKey, ciphertext)
//
// Byte-level Encrypt and Decrypt variants are available for non-string
// payloads. Ciphertexts are authenticated; any tampering fails decryption.
package secrets
