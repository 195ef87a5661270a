package query

import (
	"encoding/json"

	"github.com/aevon-lab/sift/internal/core/collection"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// render makes operation results JSON-friendly. Protobuf records are encoded
// with protojson; every other value is left alone.
func render(v any) (any, error) {
	switch val := v.(type) {
	case proto.Message:
		b, err := protojson.Marshal(val)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(b), nil
	case []any:
		return renderSlice(val)
	case FindResult:
		rec, err := render(val.Record)
		if err != nil {
			return nil, err
		}
		val.Record = rec
		return val, nil
	case *collection.OrderedMap[any, []any]:
		out := collection.NewOrderedMap[any, []any](val.Len())
		for k, group := range val.All() {
			rendered, err := renderSlice(group)
			if err != nil {
				return nil, err
			}
			out.Set(k, rendered)
		}
		return out, nil
	case *collection.OrderedMap[any, any]:
		out := collection.NewOrderedMap[any, any](val.Len())
		for k, item := range val.All() {
			rendered, err := render(item)
			if err != nil {
				return nil, err
			}
			out.Set(k, rendered)
		}
		return out, nil
	}
	return v, nil
}

func renderSlice(in []any) ([]any, error) {
	out := make([]any, len(in))
	for i, item := range in {
		rendered, err := render(item)
		if err != nil {
			return nil, err
		}
		out[i] = rendered
	}
	return out, nil
}
