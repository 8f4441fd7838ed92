package downloadmgr

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// ErrUnsupportedHash is returned for hash algorithms this package does not know
var ErrUnsupportedHash = errors.New("unsupported hash algorithm")

// DefaultHashAlgorithm is used by resources that do not set one
const DefaultHashAlgorithm = "sha1"

// ErrInvalidHash is returned when the downloaded file's hash does not match the expected one
type ErrInvalidHash struct {
	FileName     string
	Algorithm    string
	ExpectedHash string
	ActualHash   string
}

func (e *ErrInvalidHash) Error() string {
	return fmt.Sprintf(
		"file corrupted: %s %s is invalid. expected %q but actually is %q",
		e.FileName,
		e.Algorithm,
		e.ExpectedHash,
		e.ActualHash,
	)
}

func newHasher(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "sha1", "":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "md5":
		return md5.New(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedHash, algorithm)
}

// CalculateHash returns the lowercase hex digest of the file at path
func CalculateHash(path string, algorithm string) (string, error) {
	return CalculateHashFs(afero.NewOsFs(), path, algorithm)
}

// CalculateHashFs is like [CalculateHash] but reads from fs
func CalculateHashFs(fs afero.Fs, path string, algorithm string) (string, error) {
	hasher, err := newHasher(algorithm)
	if err != nil {
		return "", err
	}

	src, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	// probably io error during hashing
	if _, err := io.Copy(hasher, src); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// verify checks the file against the expected hash. An empty expected hash always passes.
func verify(fs afero.Fs, path string, algorithm string, expected string) error {
	if expected == "" {
		return nil
	}
	actual, err := CalculateHashFs(fs, path, algorithm)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, expected) {
		return &ErrInvalidHash{
			FileName:     path,
			Algorithm:    algorithm,
			ExpectedHash: expected,
			ActualHash:   actual,
		}
	}
	return nil
}
