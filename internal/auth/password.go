package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"

	"profitfy/internal/config"
)

const (
	argon2SaltLen = 16
	argon2KeyLen  = 32

	// maxHashMemoryKB caps the memory cost accepted from a stored hash (1 GiB).
	maxHashMemoryKB = 1 << 20
)

// PasswordHasher produces and verifies argon2id password hashes. Hashes are
// stored in PHC string format so the cost parameters travel with the hash.
type PasswordHasher struct {
	params config.Argon2Params
}

// NewPasswordHasher creates a hasher with the given cost parameters.
func NewPasswordHasher(params config.Argon2Params) *PasswordHasher {
	return &PasswordHasher{params: params}
}

// Hash derives an argon2id hash of the password with a fresh random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, argon2KeyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Compare reports whether the plaintext password matches the encoded hash.
// A malformed hash is treated as a mismatch, never as an error: the login
// path must behave identically whatever is stored in the password column.
func (h *PasswordHasher) Compare(password, encodedHash string) bool {
	params, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false
	}

	derived := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(derived, key) == 1
}

// DummyHash returns a well-formed hash of an unguessable random password.
// Comparing against it keeps the timing of a lookup miss in line with a
// password mismatch for an existing user.
func (h *PasswordHasher) DummyHash() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// rand failing means the process is in far worse trouble than a
		// degenerate dummy hash
		return "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	}
	hash, err := h.Hash(base64.RawStdEncoding.EncodeToString(buf))
	if err != nil {
		return "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	}
	return hash
}

func decodeHash(encodedHash string) (config.Argon2Params, []byte, []byte, error) {
	var params config.Argon2Params

	var version int
	var memory, iterations, threads uint32
	var saltB64, keyB64 string
	n, err := fmt.Sscanf(encodedHash, "$argon2id$v=%d$m=%d,t=%d,p=%d$%s",
		&version, &memory, &iterations, &threads, &saltB64)
	if err != nil || n != 5 {
		return params, nil, nil, fmt.Errorf("malformed hash")
	}
	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}
	if threads == 0 || threads > 255 {
		return params, nil, nil, fmt.Errorf("threads out of range")
	}
	// argon2.IDKey panics on zero iterations, and an attacker-supplied memory
	// value is an allocation request. Bound both before deriving anything.
	if iterations == 0 {
		return params, nil, nil, fmt.Errorf("iterations out of range")
	}
	if memory == 0 || memory > maxHashMemoryKB {
		return params, nil, nil, fmt.Errorf("memory out of range")
	}

	// Sscanf's %s is greedy, so saltB64 still holds "<salt>$<key>".
	var sep int
	for sep = 0; sep < len(saltB64); sep++ {
		if saltB64[sep] == '$' {
			break
		}
	}
	if sep == len(saltB64) {
		return params, nil, nil, fmt.Errorf("malformed hash")
	}
	keyB64 = saltB64[sep+1:]
	saltB64 = saltB64[:sep]

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return params, nil, nil, fmt.Errorf("decode salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(keyB64)
	if err != nil {
		return params, nil, nil, fmt.Errorf("decode key: %w", err)
	}
	if len(key) == 0 {
		return params, nil, nil, fmt.Errorf("empty key")
	}

	params.Memory = memory
	params.Time = iterations
	params.Threads = uint8(threads)
	return params, salt, key, nil
}
