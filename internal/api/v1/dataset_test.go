package v1

import (
	"encoding/json"
	"testing"
)

func TestDatasetUpload_Validation(t *testing.T) {
	tests := []struct {
		name    string
		upload  DatasetUpload
		wantErr bool
		checkFn func(*testing.T, *DatasetUpload) // Optional validation after Validate()
	}{
		{
			name: "inline records default to json",
			upload: DatasetUpload{
				Name:    "members",
				Records: json.RawMessage(`[{"name":"张飞"}]`),
			},
			checkFn: func(t *testing.T, u *DatasetUpload) {
				if u.Format != "json" {
					t.Errorf("Format should default to 'json', got %q", u.Format)
				}
				if string(u.Payload()) != `[{"name":"张飞"}]` {
					t.Errorf("Payload() = %s", u.Payload())
				}
			},
		},
		{
			name: "yaml content",
			upload: DatasetUpload{
				Name:    "members",
				Format:  "yaml",
				Content: "- name: 张飞\n",
			},
			checkFn: func(t *testing.T, u *DatasetUpload) {
				if string(u.Payload()) != "- name: 张飞\n" {
					t.Errorf("Payload() = %q", u.Payload())
				}
			},
		},
		{
			name: "protobuf with schema",
			upload: DatasetUpload{
				Name:    "members",
				Format:  "protobuf",
				Records: json.RawMessage(`[{"name":"张飞"}]`),
				Schema:  `syntax = "proto3"; message Member { string name = 1; }`,
				Message: "Member",
			},
		},
		{
			name:    "missing name",
			upload:  DatasetUpload{Records: json.RawMessage(`[]`)},
			wantErr: true,
		},
		{
			name:    "unknown format",
			upload:  DatasetUpload{Name: "members", Format: "csv", Content: "a,b"},
			wantErr: true,
		},
		{
			name:    "neither records nor content",
			upload:  DatasetUpload{Name: "members"},
			wantErr: true,
		},
		{
			name:    "null records",
			upload:  DatasetUpload{Name: "members", Records: json.RawMessage(`null`)},
			wantErr: true,
		},
		{
			name: "both records and content",
			upload: DatasetUpload{
				Name:    "members",
				Records: json.RawMessage(`[]`),
				Content: "[]",
			},
			wantErr: true,
		},
		{
			name:    "yaml as inline records",
			upload:  DatasetUpload{Name: "members", Format: "yaml", Records: json.RawMessage(`[]`)},
			wantErr: true,
		},
		{
			name:    "protobuf without schema",
			upload:  DatasetUpload{Name: "members", Format: "protobuf", Content: "[]"},
			wantErr: true,
		},
		{
			name:    "schema on json upload",
			upload:  DatasetUpload{Name: "members", Content: "[]", Schema: "message M {}"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.upload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.checkFn != nil && err == nil {
				tt.checkFn(t, &tt.upload)
			}
		})
	}
}

func TestDatasetUpload_JSONRoundTrip(t *testing.T) {
	body := `{"name":"members","records":[{"name":"张飞","age":23}]}`

	var u DatasetUpload
	if err := json.Unmarshal([]byte(body), &u); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(u.Payload(), &records); err != nil {
		t.Fatalf("Payload() is not a JSON array: %v", err)
	}
	if len(records) != 1 || records[0]["name"] != "张飞" {
		t.Errorf("unexpected records: %v", records)
	}
}
