package review

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Kind discriminates the variants a spec value can take after inference.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	// KindToken holds the single digit run found in an otherwise
	// non-numeric value. It is kept as a string, never converted.
	KindToken
	// KindTokenList holds two or more digit runs in document order. The
	// value is ambiguous (e.g. "5/10 ch") and is preserved as a list
	// rather than coerced to one number.
	KindTokenList
	// KindRaw is the verbatim value of an exempt spec key.
	KindRaw
	// KindZero stands in for a value containing no digits at all.
	KindZero
)

// SpecValue is the tagged variant stored under each spec key. It marshals
// to the native BSON scalar/array for its kind so the stored documents
// look like ordinary hand-written ones.
type SpecValue struct {
	kind   Kind
	b      bool
	i      int
	f      float64
	s      string
	tokens []string
}

func BoolValue(b bool) SpecValue          { return SpecValue{kind: KindBool, b: b} }
func IntValue(i int) SpecValue            { return SpecValue{kind: KindInt, i: i} }
func FloatValue(f float64) SpecValue      { return SpecValue{kind: KindFloat, f: f} }
func TokenValue(s string) SpecValue       { return SpecValue{kind: KindToken, s: s} }
func TokenListValue(t []string) SpecValue { return SpecValue{kind: KindTokenList, tokens: t} }
func RawValue(s string) SpecValue         { return SpecValue{kind: KindRaw, s: s} }
func ZeroValue() SpecValue                { return SpecValue{kind: KindZero} }

func (v SpecValue) Kind() Kind       { return v.kind }
func (v SpecValue) Bool() bool       { return v.b }
func (v SpecValue) Int() int         { return v.i }
func (v SpecValue) Float() float64   { return v.f }
func (v SpecValue) Token() string    { return v.s }
func (v SpecValue) Tokens() []string { return v.tokens }
func (v SpecValue) Raw() string      { return v.s }

func (v SpecValue) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindToken, KindRaw:
		return v.s
	case KindTokenList:
		return strings.Join(v.tokens, ",")
	case KindZero:
		return "0"
	}
	return ""
}

// MarshalBSONValue implements bson.ValueMarshaler.
func (v SpecValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch v.kind {
	case KindBool:
		return bson.MarshalValue(v.b)
	case KindInt:
		return bson.MarshalValue(v.i)
	case KindFloat:
		return bson.MarshalValue(v.f)
	case KindToken, KindRaw:
		return bson.MarshalValue(v.s)
	case KindTokenList:
		return bson.MarshalValue(v.tokens)
	case KindZero:
		return bson.MarshalValue(0)
	}
	return 0, nil, fmt.Errorf("spec value: unknown kind %d", v.kind)
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler. Stored documents
// carry native BSON types, so the kind is recovered from the wire type;
// an all-digit string is a preserved token, any other string is raw.
func (v *SpecValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Boolean:
		*v = BoolValue(raw.Boolean())
	case bsontype.Int32:
		*v = IntValue(int(raw.Int32()))
	case bsontype.Int64:
		*v = IntValue(int(raw.Int64()))
	case bsontype.Double:
		*v = FloatValue(raw.Double())
	case bsontype.String:
		s := raw.StringValue()
		if isDigits(s) {
			*v = TokenValue(s)
		} else {
			*v = RawValue(s)
		}
	case bsontype.Array:
		var tokens []string
		if err := raw.Unmarshal(&tokens); err != nil {
			return fmt.Errorf("spec value array: %w", err)
		}
		*v = TokenListValue(tokens)
	default:
		return fmt.Errorf("spec value: unsupported bson type %s", t)
	}
	return nil
}

// The store treats "." in a field name as a nesting delimiter, so literal
// periods in spec keys are swapped for the HTML entity before use as map
// keys and swapped back when keys are reported.
const escapedDot = "&#46;"

func EscapeKey(key string) string {
	return strings.ReplaceAll(key, ".", escapedDot)
}

func UnescapeKey(key string) string {
	return strings.ReplaceAll(key, escapedDot, ".")
}
