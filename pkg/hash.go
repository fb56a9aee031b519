package duplicatefinder

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Digest is the content fingerprint of one file. Two files with bitwise equal
// digests are treated as content-identical.
type Digest []byte

// String returns the digest as lowercase hex
func (d Digest) String() string {
	return hex.EncodeToString(d)
}

// Equal reports whether two digests are bitwise equal
func (d Digest) Equal(other Digest) bool {
	return string(d) == string(other)
}

// HashResult pairs a path with the digest of its content at read time
type HashResult struct {
	Path   string
	Digest Digest
}

// HashAlgorithm represents a hash algorithm configuration
type HashAlgorithm struct {
	Name    string
	TypeID  uint16
	Size    int
	NewFunc func() hash.Hash
}

// GetHashAlgorithm returns the hash algorithm configuration for the given name
func GetHashAlgorithm(name string) (*HashAlgorithm, error) {
	typeID, ok := HashTypeFromName(name)
	if !ok {
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
	return GetHashAlgorithmByType(typeID)
}

// GetHashAlgorithmByType returns the hash algorithm configuration for the given type ID
func GetHashAlgorithmByType(typeID uint16) (*HashAlgorithm, error) {
	switch typeID {
	case HashTypeMD5:
		return &HashAlgorithm{
			Name:    "md5",
			TypeID:  HashTypeMD5,
			Size:    HashSizeMD5,
			NewFunc: md5.New,
		}, nil
	case HashTypeSHA1:
		return &HashAlgorithm{
			Name:    "sha1",
			TypeID:  HashTypeSHA1,
			Size:    HashSizeSHA1,
			NewFunc: sha1.New,
		}, nil
	case HashTypeSHA256:
		return &HashAlgorithm{
			Name:    "sha256",
			TypeID:  HashTypeSHA256,
			Size:    HashSizeSHA256,
			NewFunc: sha256.New,
		}, nil
	case HashTypeSHA512:
		return &HashAlgorithm{
			Name:    "sha512",
			TypeID:  HashTypeSHA512,
			Size:    HashSizeSHA512,
			NewFunc: sha512.New,
		}, nil
	case HashTypeSHA3256:
		return &HashAlgorithm{
			Name:    "sha3-256",
			TypeID:  HashTypeSHA3256,
			Size:    HashSizeSHA3256,
			NewFunc: sha3.New256,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported hash type ID: %d", typeID)
	}
}

// SupportedHashAlgorithms lists the names accepted by GetHashAlgorithm
func SupportedHashAlgorithms() []string {
	return []string{"md5", "sha1", "sha256", "sha512", "sha3-256"}
}

// Fingerprint hashes the file at filePath in chunks of bufferSize bytes. Peak
// memory is one buffer regardless of file size, and the digest does not depend
// on bufferSize. The shutdown channel is checked between chunks; a nil channel
// never fires.
func Fingerprint(filePath string, algorithm *HashAlgorithm, bufferSize int, shutdownChan <-chan struct{}) (Digest, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultChunkSize
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, &IOError{Path: filePath, Op: "open", Err: err}
	}
	defer file.Close()

	adviseSequential(file)

	hasher := algorithm.NewFunc()
	buffer := make([]byte, bufferSize)

	for {
		select {
		case <-shutdownChan:
			return nil, ErrInterrupted
		default:
		}

		n, err := file.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &IOError{Path: filePath, Op: "read", Err: err}
		}
	}

	return hasher.Sum(nil), nil
}

// HashFileToHexString fingerprints a file with the default chunk size and
// returns the digest as a hex string
func HashFileToHexString(filePath string, algorithm *HashAlgorithm) (string, error) {
	digest, err := Fingerprint(filePath, algorithm, DefaultChunkSize, nil)
	if err != nil {
		return "", err
	}
	return digest.String(), nil
}

// HashStringToHexString calculates the hash of a string and returns it as a hex string
func HashStringToHexString(data string, algorithm *HashAlgorithm) string {
	hasher := algorithm.NewFunc()
	io.Copy(hasher, strings.NewReader(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
