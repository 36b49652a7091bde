package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

var errEmptyArgument = errors.New("passwords: salt and hash must be non-empty")

// Argon2Params defines tunable parameters for Argon2id password hashing.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns parameters sized for interactive login latency
// while remaining expensive for offline guessing.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024,
		Iterations:  1,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher derives and verifies salted password digests. It carries its
// parameters explicitly so tests can construct independent instances; it is
// stateless and safe for concurrent use.
type Hasher struct {
	params Argon2Params
}

// NewHasher constructs a Hasher, falling back to defaults for unset fields.
func NewHasher(params Argon2Params) *Hasher {
	defaults := DefaultArgon2Params()
	if params.Memory == 0 {
		params.Memory = defaults.Memory
	}
	if params.Iterations == 0 {
		params.Iterations = defaults.Iterations
	}
	if params.Parallelism == 0 {
		params.Parallelism = defaults.Parallelism
	}
	if params.SaltLength == 0 {
		params.SaltLength = defaults.SaltLength
	}
	if params.KeyLength == 0 {
		params.KeyLength = defaults.KeyLength
	}
	return &Hasher{params: params}
}

// GenerateSalt produces a fresh random salt from a cryptographically strong
// source, base64-encoded for storage alongside the hash.
func (h *Hasher) GenerateSalt() (string, error) {
	buf := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(buf), nil
}

// Hash derives the Argon2id digest of password under salt. Same inputs always
// yield the same output; distinct salts yield distinct outputs.
func (h *Hasher) Hash(password, salt string) (string, error) {
	if salt == "" {
		return "", errEmptyArgument
	}
	sum := argon2.IDKey([]byte(password), []byte(salt), h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)
	return base64.RawStdEncoding.EncodeToString(sum), nil
}

// Verify recomputes the digest for password under salt and compares it to
// hashed in constant time. A mismatch returns false with a nil error; only
// malformed arguments produce an error.
func (h *Hasher) Verify(password, salt, hashed string) (bool, error) {
	if salt == "" || hashed == "" {
		return false, errEmptyArgument
	}

	expected, err := base64.RawStdEncoding.DecodeString(hashed)
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}

	computed := argon2.IDKey([]byte(password), []byte(salt), h.params.Iterations, h.params.Memory, h.params.Parallelism, uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}
