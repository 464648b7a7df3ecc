package operation

import (
	"fmt"
	"math"
	"reflect"
)

var optionValueType = reflect.TypeOf(OptionValue{})

func checkFieldType(param Param, typ reflect.Type) error {
	if typ.Kind() == reflect.Interface {
		return nil
	}
	switch ui := param.UI.(type) {
	case InputText:
		switch ui.Kind {
		case KindText, KindEmail, KindPassword:
			if typ.Kind() != reflect.String {
				return fmt.Errorf("%s input needs a string field, got %s", ui.Kind, typ)
			}
		case KindNumber:
			if !isNumericKind(typ.Kind()) {
				return fmt.Errorf("number input needs a numeric field, got %s", typ)
			}
		case KindCheckbox:
			if typ.Kind() != reflect.Bool {
				return fmt.Errorf("checkbox input needs a bool field, got %s", typ)
			}
		}
		return nil
	case Select:
		elem := typ
		if ui.Multiple {
			if typ.Kind() != reflect.Slice {
				return fmt.Errorf("multiple select needs a slice field, got %s", typ)
			}
			elem = typ.Elem()
		}
		return checkSelectElem(ui, elem)
	default:
		return fmt.Errorf("unsupported ui hint %T", param.UI)
	}
}

func checkSelectElem(sel Select, elem reflect.Type) error {
	switch {
	case elem == optionValueType, elem.Kind() == reflect.String, elem.Kind() == reflect.Interface:
		return nil
	case isNumericKind(elem.Kind()):
		if !sel.Numeric() {
			return fmt.Errorf("select with non-numeric options cannot bind to %s", elem)
		}
		return nil
	default:
		return fmt.Errorf("select needs OptionValue, string or numeric field, got %s", elem)
	}
}

func assign(dst reflect.Value, value any) error {
	if value == nil {
		return nil
	}
	if dst.Type() == optionValueType {
		ov, err := toOptionValue(value)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(ov))
		return nil
	}

	switch dst.Kind() {
	case reflect.Interface:
		src := reflect.ValueOf(value)
		if !src.Type().AssignableTo(dst.Type()) {
			return fmt.Errorf("cannot assign %T to %s", value, dst.Type())
		}
		dst.Set(src)
		return nil
	case reflect.String:
		switch v := value.(type) {
		case string:
			dst.SetString(v)
		case OptionValue:
			dst.SetString(v.String())
		default:
			return fmt.Errorf("expected string, got %T", value)
		}
		return nil
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		dst.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
		if f != math.Trunc(f) {
			return fmt.Errorf("expected integer, got %v", f)
		}
		if dst.OverflowInt(int64(f)) {
			return fmt.Errorf("%v overflows %s", f, dst.Type())
		}
		dst.SetInt(int64(f))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
		if f < 0 || f != math.Trunc(f) {
			return fmt.Errorf("expected unsigned integer, got %v", f)
		}
		if dst.OverflowUint(uint64(f)) {
			return fmt.Errorf("%v overflows %s", f, dst.Type())
		}
		dst.SetUint(uint64(f))
		return nil
	case reflect.Float32, reflect.Float64:
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
		dst.SetFloat(f)
		return nil
	case reflect.Slice:
		src := reflect.ValueOf(value)
		if src.Kind() != reflect.Slice {
			return fmt.Errorf("expected list, got %T", value)
		}
		out := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			if err := assign(out.Index(i), src.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		dst.Set(out)
		return nil
	default:
		return fmt.Errorf("unsupported field type %s", dst.Type())
	}
}

func toOptionValue(value any) (OptionValue, error) {
	switch v := value.(type) {
	case OptionValue:
		return v, nil
	case string:
		return String(v), nil
	}
	if f, ok := toFloat(value); ok {
		return Number(f), nil
	}
	return OptionValue{}, fmt.Errorf("expected option value, got %T", value)
}

func toFloat(value any) (float64, bool) {
	if ov, ok := value.(OptionValue); ok {
		if !ov.IsNumber() {
			return 0, false
		}
		return ov.Float(), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func isNumericKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
