package duplicatefinder

import (
	"strings"
)

// Hash type constants
const (
	HashTypeMD5     uint16 = 1 // MD5 (16 bytes)
	HashTypeSHA1    uint16 = 2 // SHA-1 (20 bytes)
	HashTypeSHA256  uint16 = 3 // SHA-256 (32 bytes)
	HashTypeSHA512  uint16 = 4 // SHA-512 (64 bytes)
	HashTypeSHA3256 uint16 = 5 // SHA3-256 (32 bytes)
)

// Hash size constants
const (
	HashSizeMD5     = 16 // MD5 digest size in bytes
	HashSizeSHA1    = 20 // SHA-1 digest size in bytes
	HashSizeSHA256  = 32 // SHA-256 digest size in bytes
	HashSizeSHA512  = 64 // SHA-512 digest size in bytes
	HashSizeSHA3256 = 32 // SHA3-256 digest size in bytes
)

// Defaults used when neither the config file nor the command line say otherwise
const (
	DefaultHashAlgorithm = "md5"
	DefaultChunkSize     = 4096
	DefaultHashBuffer    = "4K"
	DefaultOutputFormat  = "none"
	MaxHashWorkers       = 256
)

// Output formats understood by FormatResult
const (
	FormatNone   = "none"
	FormatHuman  = "human"
	FormatJSON   = "json"
	FormatFdupes = "fdupes"
)

// groupIndexLevels is the skiplist height used for the digest group index
const groupIndexLevels = 16

// HashTypeName returns the human-readable name for a hash type
func HashTypeName(hashType uint16) string {
	switch hashType {
	case HashTypeMD5:
		return "md5"
	case HashTypeSHA1:
		return "sha1"
	case HashTypeSHA256:
		return "sha256"
	case HashTypeSHA512:
		return "sha512"
	case HashTypeSHA3256:
		return "sha3-256"
	default:
		return "unknown"
	}
}

// HashTypeFromName returns the hash type constant from a name (case-insensitive)
func HashTypeFromName(name string) (uint16, bool) {
	switch strings.ToLower(name) {
	case "md5":
		return HashTypeMD5, true
	case "sha1":
		return HashTypeSHA1, true
	case "sha256":
		return HashTypeSHA256, true
	case "sha512":
		return HashTypeSHA512, true
	case "sha3-256", "sha3":
		return HashTypeSHA3256, true
	default:
		return 0, false
	}
}
