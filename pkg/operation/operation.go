package operation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrArity is returned when the number of arguments passed to Invoke does
	// not match the operation's parameter list.
	ErrArity = errors.New("operation: argument count does not match params")
	// ErrNoHandler is returned when invoking the zero Operation.
	ErrNoHandler = errors.New("operation: handler is not configured")
)

// Args carries decoded arguments positionally, in Params order.
type Args []any

// Result is the response payload of an operation. A nil Result means the
// operation produced no payload.
type Result = map[string]any

// Operation is a named, described, parameterised admin action.
type Operation struct {
	Name   string
	Desc   string
	Params []Param

	arity  int
	invoke func(ctx context.Context, args Args) (Result, error)
}

// New binds fn to params. A must be a struct whose exported fields line up
// one-to-one, in order, with params. Field types must hold what the
// parameter produces: string for text, email and password inputs, any numeric
// type for number inputs, bool for checkboxes, and OptionValue, string or a
// numeric type for selects (a slice of those when multiple). Interface fields
// accept anything.
func New[A any](name, desc string, params []Param, fn func(ctx context.Context, args A) (Result, error)) (Operation, error) {
	if fn == nil {
		return Operation{}, fmt.Errorf("operation %q: handler is required", name)
	}

	typ := reflect.TypeOf((*A)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return Operation{}, fmt.Errorf("operation %q: argument type %s must be a struct", name, typ)
	}

	fields := exportedFields(typ)
	if len(fields) != len(params) {
		return Operation{}, fmt.Errorf("operation %q: %w: %d params, %s has %d fields", name, ErrArity, len(params), typ, len(fields))
	}
	for i, param := range params {
		if err := checkFieldType(param, fields[i].Type); err != nil {
			return Operation{}, fmt.Errorf("operation %q: param %q bound to %s.%s: %w", name, param.Name, typ.Name(), fields[i].Name, err)
		}
	}

	op := Operation{
		Name:   name,
		Desc:   desc,
		Params: cloneParams(params),
		arity:  len(fields),
	}
	op.invoke = func(ctx context.Context, args Args) (Result, error) {
		var target A
		rv := reflect.ValueOf(&target).Elem()
		for i, arg := range args {
			if err := assign(rv.FieldByIndex(fields[i].Index), arg); err != nil {
				return nil, fmt.Errorf("operation %q: argument %d (%s): %w", name, i, params[i].Name, err)
			}
		}
		return fn(ctx, target)
	}

	if err := op.Validate(); err != nil {
		return Operation{}, err
	}
	return op, nil
}

// MustNew is New that panics on error. Useful for static registries.
func MustNew[A any](name, desc string, params []Param, fn func(ctx context.Context, args A) (Result, error)) Operation {
	op, err := New(name, desc, params, fn)
	if err != nil {
		panic(err)
	}
	return op
}

// Clone returns a copy of op whose Params and select options share no
// backing arrays with op.
func (op Operation) Clone() Operation {
	op.Params = cloneParams(op.Params)
	return op
}

func cloneParams(params []Param) []Param {
	if params == nil {
		return nil
	}
	out := make([]Param, len(params))
	for i, param := range params {
		if sel, ok := param.UI.(Select); ok {
			sel.Options = append([]Option(nil), sel.Options...)
			param.UI = sel
		}
		out[i] = param
	}
	return out
}

// Arity reports the number of positional arguments the handler accepts.
func (op Operation) Arity() int {
	return op.arity
}

// Invoke calls the handler with positional arguments in Params order.
func (op Operation) Invoke(ctx context.Context, args Args) (Result, error) {
	if op.invoke == nil {
		return nil, ErrNoHandler
	}
	if len(args) != op.arity {
		return nil, fmt.Errorf("operation %q: %w: want %d, got %d", op.Name, ErrArity, op.arity, len(args))
	}
	return op.invoke(ctx, args)
}

// Validate checks the structural invariants of the operation: a name, unique
// non-empty parameter names, known input kinds, unique option values, a
// selectable option for every required select, and a matching arity.
func (op Operation) Validate() error {
	if strings.TrimSpace(op.Name) == "" {
		return errors.New("operation: name is required")
	}
	if op.invoke != nil && op.arity != len(op.Params) {
		return fmt.Errorf("operation %q: %w: %d params, handler takes %d", op.Name, ErrArity, len(op.Params), op.arity)
	}

	seen := make(map[string]struct{}, len(op.Params))
	for i, param := range op.Params {
		name := strings.TrimSpace(param.Name)
		if name == "" {
			return fmt.Errorf("operation %q: param %d has no name", op.Name, i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("operation %q: duplicate param %q", op.Name, name)
		}
		seen[name] = struct{}{}

		if err := validateUI(param.UI); err != nil {
			return fmt.Errorf("operation %q: param %q: %w", op.Name, name, err)
		}
	}
	return nil
}

func validateUI(ui ParamUI) error {
	switch v := ui.(type) {
	case nil:
		return errors.New("ui hint is required")
	case InputText:
		if !v.Kind.Valid() {
			return fmt.Errorf("unknown input kind %q", v.Kind)
		}
	case Select:
		if v.Required && len(v.Choices()) == 0 {
			return errors.New("required select has no options")
		}
		values := make(map[string]struct{}, len(v.Options))
		for _, opt := range v.Options {
			key := opt.Value.String()
			if _, dup := values[key]; dup {
				return fmt.Errorf("duplicate option value %q", key)
			}
			values[key] = struct{}{}
		}
	default:
		return fmt.Errorf("unsupported ui hint %T", ui)
	}
	return nil
}

func exportedFields(typ reflect.Type) []reflect.StructField {
	fields := make([]reflect.StructField, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}
