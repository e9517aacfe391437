package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// XML Schema datatype IRIs understood by the codec table.
const (
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
	XSDString    = XSDNamespace + "string"
	XSDFloat     = XSDNamespace + "float"
	XSDBoolean   = XSDNamespace + "boolean"
	XSDInteger   = XSDNamespace + "integer"
	XSDDouble    = XSDNamespace + "double"
)

// Literal is a lexical value with an optional datatype IRI.
type Literal struct {
	Lexical  string
	Datatype string
}

// String returns the lexical form
func (l Literal) String() string { return l.Lexical }

// Codec converts between a literal of one datatype and a Go value.
type Codec struct {
	Name     string
	Datatype string
	GoType   string

	// Parse converts a lexical form into the codec's Go value.
	Parse func(lexical string) (any, error)
	// Serialize converts a Go value into a literal. It reports false when v
	// is not of the codec's Go type.
	Serialize func(v any) (Literal, bool)
}

// Codecs is the closed set of literal kinds with native Go representations.
var Codecs = []Codec{
	{
		Name:     "Text",
		Datatype: XSDString,
		GoType:   "string",
		Parse: func(lexical string) (any, error) {
			return lexical, nil
		},
		Serialize: func(v any) (Literal, bool) {
			s, ok := v.(string)
			return Literal{Lexical: s, Datatype: XSDString}, ok
		},
	},
	{
		Name:     "Float",
		Datatype: XSDFloat,
		GoType:   "float32",
		Parse: func(lexical string) (any, error) {
			f, err := strconv.ParseFloat(strings.TrimSpace(lexical), 32)
			if err != nil {
				return nil, err
			}
			return float32(f), nil
		},
		Serialize: func(v any) (Literal, bool) {
			f, ok := v.(float32)
			return Literal{Lexical: strconv.FormatFloat(float64(f), 'g', -1, 32), Datatype: XSDFloat}, ok
		},
	},
	{
		Name:     "Boolean",
		Datatype: XSDBoolean,
		GoType:   "bool",
		Parse: func(lexical string) (any, error) {
			return strconv.ParseBool(strings.TrimSpace(lexical))
		},
		Serialize: func(v any) (Literal, bool) {
			b, ok := v.(bool)
			return Literal{Lexical: strconv.FormatBool(b), Datatype: XSDBoolean}, ok
		},
	},
	{
		Name:     "Integer",
		Datatype: XSDInteger,
		GoType:   "int",
		Parse: func(lexical string) (any, error) {
			return strconv.Atoi(strings.TrimSpace(lexical))
		},
		Serialize: func(v any) (Literal, bool) {
			i, ok := v.(int)
			return Literal{Lexical: strconv.Itoa(i), Datatype: XSDInteger}, ok
		},
	},
}

// CodecFor returns the codec registered for datatype.
func CodecFor(datatype string) (Codec, bool) {
	for _, c := range Codecs {
		if c.Datatype == datatype {
			return c, true
		}
	}
	return Codec{}, false
}

// Encode converts v into a literal. Literals pass through unchanged; values
// no codec accepts become untyped literals of their default formatting.
func Encode(v any) Literal {
	if l, ok := v.(Literal); ok {
		return l
	}
	for _, c := range Codecs {
		if l, ok := c.Serialize(v); ok {
			return l
		}
	}
	return Literal{Lexical: fmt.Sprint(v)}
}

// EncodeAs converts v into a literal of datatype with its canonical lexical
// form. An empty datatype behaves like Encode.
func EncodeAs(v any, datatype string) Literal {
	l := Encode(v)
	if datatype == "" {
		return l
	}
	l.Datatype = datatype
	return Canonical(l)
}

// Canonical rewrites the lexical form of a numeric or boolean literal the
// way Encode formats the Go value, so "1.50"^^xsd:double and
// EncodeAs(1.5, XSDDouble) are the same literal. Lexical forms that do not
// parse are kept.
func Canonical(l Literal) Literal {
	lexical := strings.TrimSpace(l.Lexical)
	switch {
	case l.Datatype == XSDDouble:
		if f, err := strconv.ParseFloat(lexical, 64); err == nil {
			l.Lexical = strconv.FormatFloat(f, 'g', -1, 64)
		}
	case l.Datatype == XSDFloat:
		if f, err := strconv.ParseFloat(lexical, 32); err == nil {
			l.Lexical = strconv.FormatFloat(f, 'g', -1, 32)
		}
	case l.Datatype == XSDInteger || strings.HasSuffix(l.Datatype, "#int"):
		if i, err := strconv.ParseInt(lexical, 10, 64); err == nil {
			l.Lexical = strconv.FormatInt(i, 10)
		}
	case l.Datatype == XSDBoolean:
		if b, err := strconv.ParseBool(lexical); err == nil {
			l.Lexical = strconv.FormatBool(b)
		}
	}
	return l
}

// Decode converts l into a T, using the codec for the literal's datatype when
// it yields a T and scanning the lexical form otherwise.
func Decode[T any](l Literal) (T, error) {
	var zero T
	if v, ok := any(l).(T); ok {
		return v, nil
	}
	if c, ok := CodecFor(l.Datatype); ok {
		v, err := c.Parse(l.Lexical)
		if err != nil {
			return zero, fmt.Errorf("decoding %q as %s: %w", l.Lexical, c.Name, err)
		}
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	var out T
	if s, ok := any(&out).(*string); ok {
		*s = l.Lexical
		return out, nil
	}
	if _, err := fmt.Sscan(l.Lexical, &out); err != nil {
		return zero, fmt.Errorf("decoding %q as %T: %w", l.Lexical, zero, err)
	}
	return out, nil
}
