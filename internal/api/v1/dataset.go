package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DatasetUpload is the request body for POST /v1/datasets.
type DatasetUpload struct {
	// Name identifies the dataset in query URLs, e.g. "members".
	Name string `json:"name"`

	// Format is "json" (default), "yaml" or "protobuf".
	Format string `json:"format,omitempty"`

	// Records is an inline JSON array of records. Exactly one of Records and
	// Content must be set.
	Records json.RawMessage `json:"records,omitempty"`

	// Content is the encoded record list as text, for YAML uploads or JSON
	// that is easier to send as a string.
	Content string `json:"content,omitempty"`

	// Schema is the .proto definition. Required when Format is "protobuf",
	// in which case Records/Content hold protojson messages.
	Schema string `json:"schema,omitempty"`

	// Message selects the record message type from Schema.
	Message string `json:"message,omitempty"`
}

// Validate checks the upload envelope and fills in the default format.
// Record content itself is checked when the dataset is decoded.
func (u *DatasetUpload) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("name is required")
	}

	if u.Format == "" {
		u.Format = "json"
	}
	switch u.Format {
	case "json", "yaml", "protobuf":
	default:
		return fmt.Errorf("unsupported format %q (must be json, yaml or protobuf)", u.Format)
	}

	hasRecords := len(bytes.TrimSpace(u.Records)) > 0 && !bytes.Equal(bytes.TrimSpace(u.Records), []byte("null"))
	hasContent := u.Content != ""
	if hasRecords == hasContent {
		return fmt.Errorf("exactly one of records or content is required")
	}
	if hasRecords && u.Format == "yaml" {
		return fmt.Errorf("records must be sent as content for yaml datasets")
	}

	if u.Format == "protobuf" && u.Schema == "" {
		return fmt.Errorf("schema is required for protobuf datasets")
	}
	if u.Format != "protobuf" && (u.Schema != "" || u.Message != "") {
		return fmt.Errorf("schema and message only apply to protobuf datasets")
	}

	return nil
}

// Payload returns the encoded record list.
func (u *DatasetUpload) Payload() []byte {
	if u.Content != "" {
		return []byte(u.Content)
	}
	return bytes.TrimSpace(u.Records)
}
