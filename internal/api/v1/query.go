package v1

import (
	"fmt"
)

// Query is the request body for POST /v1/datasets/:name/query. Which fields
// apply depends on Op.
type Query struct {
	// Op names the operation, e.g. "group" or "sum".
	Op string `json:"op"`

	// Path addresses the property to read on each record, e.g.
	// "address.city", "tags[0]", "attrs(color)" or a "$." JSONPath.
	Path string `json:"path,omitempty"`

	// ValuePath is the value side of "value_map".
	ValuePath string `json:"value_path,omitempty"`

	// Values are matched against Path by "select", "reject" and "find".
	Values []any `json:"values,omitempty"`

	// Names are the numeric properties for "sum" and "avg".
	Names []string `json:"names,omitempty"`

	// Scale is the number of fractional digits for "avg".
	Scale *int32 `json:"scale,omitempty"`

	// Connector separates joined values. An empty string is honoured.
	Connector *string `json:"connector,omitempty"`

	// SkipEmpty leaves empty strings out of "join".
	SkipEmpty bool `json:"skip_empty,omitempty"`
}

// Validate ensures the query names an operation.
func (q *Query) Validate() error {
	if q.Op == "" {
		return fmt.Errorf("op is required")
	}
	if q.Scale != nil && *q.Scale < 0 {
		return fmt.Errorf("scale must be >= 0")
	}
	return nil
}

// QueryResult is the response body for a successful query.
type QueryResult struct {
	Dataset string `json:"dataset,omitempty"`
	Op      string `json:"op"`

	// Count is the number of records the query ran over.
	Count int `json:"count"`

	Result any `json:"result"`
}
