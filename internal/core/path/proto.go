package path

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// protoStep resolves one segment against a protobuf message. Field segments
// match the proto name first and then the JSON name. Repeated and map fields
// are converted to []any and map[string]any so later segments can index them.
func protoStep(m protoreflect.Message, seg Segment) (any, error) {
	if seg.Kind == KindIndex {
		return nil, fmt.Errorf("cannot index message %s", m.Descriptor().FullName())
	}

	fields := m.Descriptor().Fields()
	fd := fields.ByName(protoreflect.Name(seg.Name))
	if fd == nil {
		fd = fields.ByJSONName(seg.Name)
	}
	if fd == nil {
		return nil, fmt.Errorf("no field %q on message %s", seg.Name, m.Descriptor().FullName())
	}

	if fd.Message() != nil && !fd.IsList() && !fd.IsMap() && !m.Has(fd) {
		return nil, nil
	}
	return protoValue(fd, m.Get(fd)), nil
}

func protoValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch {
	case fd.IsList():
		list := v.List()
		out := make([]any, list.Len())
		for i := 0; i < list.Len(); i++ {
			out[i] = protoScalar(fd, list.Get(i))
		}
		return out
	case fd.IsMap():
		out := make(map[string]any, v.Map().Len())
		v.Map().Range(func(k protoreflect.MapKey, mv protoreflect.Value) bool {
			out[k.String()] = protoScalar(fd.MapValue(), mv)
			return true
		})
		return out
	}
	return protoScalar(fd, v)
}

func protoScalar(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return v.Message().Interface()
	case protoreflect.EnumKind:
		if ev := fd.Enum().Values().ByNumber(v.Enum()); ev != nil {
			return string(ev.Name())
		}
		return int32(v.Enum())
	}
	return v.Interface()
}
