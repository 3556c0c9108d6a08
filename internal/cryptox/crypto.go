// Package cryptox seals small secrets (wallet private keys) under a
// passphrase: argon2id derives the key, AES-GCM encrypts.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// ErrWrongPassphrase is returned by Open when authentication fails.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted data")

// Sealed is the at-rest form of a secret.
type Sealed struct {
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// DeriveKey stretches a passphrase into a 32-byte AES-256 key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext under a key derived from passphrase and a fresh salt.
func Seal(plaintext, passphrase []byte) (*Sealed, error) {
	salt := common.GenerateRandByteArray(SaltSize)
	key := DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}

	nonce := common.GenerateRandByteArray(aead.NonceSize())

	return &Sealed{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
	}, nil
}

// Open reverses Seal.
func Open(s *Sealed, passphrase []byte) ([]byte, error) {
	if s == nil {
		return nil, ErrWrongPassphrase
	}

	key := DeriveKey(passphrase, s.Salt)
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}
	if len(s.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}

	plaintext, err := aead.Open(nil, s.Nonce, s.Ciphertext, nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}
