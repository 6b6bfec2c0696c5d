// Package cryptox hashes and verifies account passwords with argon2id.
//
// Hashes use the PHC-style encoding
//
//	$argon2id$v=19$t=<time>,m=<memory>,p=<threads>$<salt b64>$<hash b64>
//
// so parameters can be raised later without invalidating stored hashes.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/Zhanerrke588595/it-events/internal/common"
	"golang.org/x/crypto/argon2"
)

// ErrMalformedHash is returned when an encoded hash cannot be parsed or
// carries parameters argon2 cannot run with.
var ErrMalformedHash = errors.New("malformed password hash")

// Upper bounds accepted when decoding a stored hash. Memory is in KiB.
const (
	maxTime   = 32
	maxMemory = 1 << 20
)

// Params controls the cost of argon2id.
type Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultParams are used by HashPassword.
var DefaultParams = Params{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

// HashPassword derives an encoded argon2id hash from password using DefaultParams.
func HashPassword(password []byte) (string, error) {
	return HashPasswordWithParams(password, DefaultParams)
}

// HashPasswordWithParams derives an encoded argon2id hash using p.
func HashPasswordWithParams(password []byte, p Params) (string, error) {
	if p.SaltLen == 0 || p.KeyLen == 0 {
		return "", fmt.Errorf("invalid argon2 params: %+v", p)
	}
	salt := common.GenerateRandByteArray(int(p.SaltLen))
	key := argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$t=%d,m=%d,p=%d$%s$%s",
		argon2.Version, p.Time, p.Memory, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyPassword reports whether password matches the encoded hash.
func VerifyPassword(password []byte, encoded string) (bool, error) {
	p, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}
	candidate := argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeHash(encoded string) (Params, []byte, []byte, error) {
	var p Params

	// "", "argon2id", "v=19", "t=..,m=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrMalformedHash
	}
	if _, err := fmt.Sscanf(parts[3], "t=%d,m=%d,p=%d", &p.Time, &p.Memory, &p.Threads); err != nil {
		return p, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}

	if len(salt) == 0 || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: empty salt or key", ErrMalformedHash)
	}
	if p.Time < 1 || p.Time > maxTime || p.Threads < 1 || p.Memory > maxMemory {
		return p, nil, nil, fmt.Errorf("%w: params t=%d,m=%d,p=%d", ErrMalformedHash, p.Time, p.Memory, p.Threads)
	}

	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}
