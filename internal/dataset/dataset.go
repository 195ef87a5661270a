package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Format identifies how a dataset's records are encoded.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYaml     Format = "yaml"
	FormatProtobuf Format = "protobuf"
)

// Source records where a dataset came from.
type Source string

const (
	SourceUpload     Source = "upload"
	SourceFilesystem Source = "filesystem"
)

// Dataset is a named, immutable collection of records held in its encoded
// form. Records are decoded on demand by the Registry.
type Dataset struct {
	// ID is a UUID for uploads and "<source>-<name>" for files on disk.
	ID string `json:"id"`

	// Name is the lookup key, e.g. "members".
	Name string `json:"name"`

	Format Format `json:"format"`
	Source Source `json:"source"`

	// Content is the encoded record list.
	Content []byte `json:"content"`

	// Schema is the .proto definition for protobuf datasets.
	Schema []byte `json:"schema,omitempty"`

	// Message optionally selects a message type from Schema. The first
	// top-level message is used when empty.
	Message string `json:"message,omitempty"`

	// Fingerprint is the SHA-256 of Schema, Message and Content. Two datasets
	// with the same fingerprint decode to the same records.
	Fingerprint string `json:"fingerprint"`

	// RecordCount is filled in once the dataset has been decoded.
	RecordCount int `json:"record_count"`

	CreatedAt time.Time `json:"created_at"`
}

// ComputeFingerprint hashes the parts that determine decoded records.
func ComputeFingerprint(format Format, content, schema []byte, message string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00", format, message)
	h.Write(schema)
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// ValidateName reports whether name can be used as a dataset name. Names
// double as file names, so only letters, digits, '.', '_' and '-' are
// allowed and the first character must be a letter or digit.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDataset)
	}
	if len(name) > 128 {
		return fmt.Errorf("%w: name is longer than 128 characters", ErrInvalidDataset)
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case i > 0 && (r == '.' || r == '_' || r == '-'):
		default:
			return fmt.Errorf("%w: name %q contains %q", ErrInvalidDataset, name, r)
		}
	}
	return nil
}
