package gindex

import (
	"reflect"
	"time"

	"github.com/pkg/errors"
)

// FromStruct builds a Bag from an arbitrary Go struct by reading each
// exported field's `gindex:"name"` tag as the attribute name. Fields with
// no tag use their Go field name. A tag of "-" excludes the field.
// Supported field kinds are bool, signed and unsigned ints (stored as
// int64), float32 and float64 (stored as float64), string, time.Time
// (stored as its Unix nanosecond count), and pointers to any of those (a
// nil pointer is omitted). Anything else is a build-time error.
func FromStruct(x any) (*Bag, error) {
	v := reflect.ValueOf(x)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, errors.New("gindex: FromStruct given a nil pointer")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, errors.Errorf("gindex: FromStruct requires a struct, got %s", v.Kind())
	}
	typ := v.Type()
	attrs := make(map[string]Atom, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("gindex")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		atom, ok, err := atomFromField(v.Field(i))
		if err != nil {
			return nil, errors.Wrapf(err, "gindex: field %s", field.Name)
		}
		if !ok {
			continue
		}
		attrs[name] = atom
	}
	return NewBag(attrs), nil
}

func atomFromField(fv reflect.Value) (Atom, bool, error) {
	switch fv.Kind() {
	case reflect.Pointer:
		if fv.IsNil() {
			return Atom{}, false, nil
		}
		return atomFromField(fv.Elem())
	case reflect.Bool:
		return Bool(fv.Bool()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(fv.Int()), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(int64(fv.Uint())), true, nil
	case reflect.Float32, reflect.Float64:
		return Float(fv.Float()), true, nil
	case reflect.String:
		return String(fv.String()), true, nil
	case reflect.Struct:
		if t, ok := fv.Interface().(time.Time); ok {
			return Int(t.UnixNano()), true, nil
		}
		return Atom{}, false, errors.Errorf("unsupported struct field type %s", fv.Type())
	default:
		return Atom{}, false, errors.Errorf("unsupported field kind %s", fv.Kind())
	}
}
