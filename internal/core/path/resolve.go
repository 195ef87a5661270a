package path

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"google.golang.org/protobuf/proto"
)

// Accessor is implemented by record types that expose named properties
// directly. It is consulted before reflection for field segments.
type Accessor interface {
	Property(name string) (any, bool)
}

// Resolver evaluates a path string against one record.
type Resolver func(record any, p string) (any, error)

// Resolve evaluates p against record. Paths starting with '$' are JSONPath
// expressions; everything else uses the dotted/indexed/keyed grammar of Parse.
// A nil terminal value is returned as (nil, nil).
func Resolve(record any, p string) (any, error) {
	if strings.HasPrefix(p, "$") {
		return resolveJSONPath(record, p)
	}
	parsed, err := Parse(p)
	if err != nil {
		return nil, err
	}
	return parsed.Eval(record)
}

// Eval walks the parsed path through record.
func (p Path) Eval(record any) (any, error) {
	cur := record
	for i, seg := range p.segments {
		if isNil(cur) {
			return nil, &ResolutionError{Path: p.raw, Segment: p.prefix(i), Reason: "nil value before segment"}
		}
		next, err := step(cur, seg)
		if err != nil {
			return nil, &ResolutionError{Path: p.raw, Segment: p.prefix(i), Reason: err.Error(), Err: err}
		}
		cur = next
	}
	return cur, nil
}

func step(cur any, seg Segment) (any, error) {
	if seg.Kind == KindField {
		if a, ok := cur.(Accessor); ok {
			if v, ok := a.Property(seg.Name); ok {
				return v, nil
			}
		}
	}
	if m, ok := cur.(proto.Message); ok {
		return protoStep(m.ProtoReflect(), seg)
	}

	v := indirect(reflect.ValueOf(cur))
	if !v.IsValid() {
		return nil, fmt.Errorf("nil value")
	}

	switch seg.Kind {
	case KindField:
		switch v.Kind() {
		case reflect.Struct:
			return structField(v, seg.Name)
		case reflect.Map:
			return mapValue(v, seg.Name)
		}
		return nil, fmt.Errorf("cannot read property %q of %s", seg.Name, v.Type())

	case KindIndex:
		switch v.Kind() {
		case reflect.Slice, reflect.Array, reflect.String:
			if seg.Index >= v.Len() {
				return nil, fmt.Errorf("index %d out of range (length %d)", seg.Index, v.Len())
			}
			return valueOf(v.Index(seg.Index)), nil
		case reflect.Map:
			return mapValue(v, strconv.Itoa(seg.Index))
		}
		return nil, fmt.Errorf("cannot index %s", v.Type())

	case KindKey:
		switch v.Kind() {
		case reflect.Map:
			return mapValue(v, seg.Name)
		case reflect.Struct:
			return structField(v, seg.Name)
		}
		return nil, fmt.Errorf("cannot look up key %q in %s", seg.Name, v.Type())
	}

	return nil, fmt.Errorf("unknown segment kind %d", seg.Kind)
}

func structField(v reflect.Value, name string) (any, error) {
	t := v.Type()
	sf, ok := t.FieldByName(name)
	if !ok || !sf.IsExported() {
		sf, ok = findField(t, name)
	}
	if !ok {
		return nil, fmt.Errorf("no property %q on %s", name, t)
	}
	fv, err := v.FieldByIndexErr(sf.Index)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", name, err)
	}
	return valueOf(fv), nil
}

// findField falls back to the json tag name, then a case-insensitive match.
func findField(t reflect.Type, name string) (reflect.StructField, bool) {
	var folded reflect.StructField
	foundFolded := false
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if tag, _, _ := strings.Cut(sf.Tag.Get("json"), ","); tag == name {
			return sf, true
		}
		if !foundFolded && strings.EqualFold(sf.Name, name) {
			folded, foundFolded = sf, true
		}
	}
	return folded, foundFolded
}

// mapValue looks up key in m, converting it to the map's key type. A missing
// key yields nil, the same as a JSON object without that member.
func mapValue(m reflect.Value, key string) (any, error) {
	kv, err := mapKey(m.Type().Key(), key)
	if err != nil {
		return nil, err
	}
	v := m.MapIndex(kv)
	if !v.IsValid() && m.Type().Key().Kind() == reflect.Interface {
		if n, convErr := strconv.ParseInt(key, 10, 64); convErr == nil {
			v = m.MapIndex(reflect.ValueOf(int(n)))
		}
	}
	if !v.IsValid() {
		return nil, nil
	}
	return valueOf(v), nil
}

func mapKey(kt reflect.Type, key string) (reflect.Value, error) {
	switch kt.Kind() {
	case reflect.String:
		return reflect.ValueOf(key).Convert(kt), nil
	case reflect.Interface:
		return reflect.ValueOf(key), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, kt.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %q is not a valid %s", key, kt)
		}
		return reflect.ValueOf(n).Convert(kt), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(key, 10, kt.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %q is not a valid %s", key, kt)
		}
		return reflect.ValueOf(n).Convert(kt), nil
	case reflect.Bool:
		b, err := strconv.ParseBool(key)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %q is not a valid %s", key, kt)
		}
		return reflect.ValueOf(b).Convert(kt), nil
	}
	return reflect.Value{}, fmt.Errorf("unsupported map key type %s", kt)
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func valueOf(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

func isNil(x any) bool {
	if x == nil {
		return true
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
