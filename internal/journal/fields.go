package journal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrMissingField is returned when a required field is absent or null.
	ErrMissingField = errors.New("missing required field")
	// ErrFieldShape is returned when a field holds a value of the wrong type.
	ErrFieldShape = errors.New("unexpected field shape")
)

// fields reads typed values out of one journal record. The first failure
// sticks; later reads return zero values and the caller checks Err once the
// whole record has been read.
type fields struct {
	obj    gjson.Result
	parent *fields
	err    error
}

func newFields(obj gjson.Result) *fields {
	return &fields{obj: obj}
}

func (f *fields) child(obj gjson.Result) *fields {
	return &fields{obj: obj, parent: f}
}

func (f *fields) Err() error {
	if f.parent != nil {
		return f.parent.Err()
	}
	return f.err
}

func (f *fields) fail(key string, err error) {
	if f.parent != nil {
		f.parent.fail(key, err)
		return
	}
	if f.err == nil {
		f.err = fmt.Errorf("%s: %w", key, err)
	}
}

func (f *fields) get(key string) gjson.Result {
	return f.obj.Get(key)
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

// Has reports whether key is present, even if null.
func (f *fields) Has(key string) bool {
	return f.get(key).Exists()
}

func isInteger(v gjson.Result) bool {
	return v.Type == gjson.Number && !strings.ContainsAny(v.Raw, ".eE")
}

func (f *fields) integer(key string, v gjson.Result) int64 {
	if !isInteger(v) {
		f.fail(key, ErrFieldShape)
		return 0
	}
	n, err := strconv.ParseInt(v.Raw, 10, 64)
	if err != nil {
		f.fail(key, ErrFieldShape)
		return 0
	}
	return n
}

// Int reads a required integer.
func (f *fields) Int(key string) int64 {
	v := f.get(key)
	if !present(v) {
		f.fail(key, ErrMissingField)
		return 0
	}
	return f.integer(key, v)
}

// OptInt reads an optional integer.
func (f *fields) OptInt(key string) *int64 {
	v := f.get(key)
	if !present(v) {
		return nil
	}
	n := f.integer(key, v)
	return &n
}

func (f *fields) decimal(key string, v gjson.Result) float64 {
	if v.Type != gjson.Number {
		f.fail(key, ErrFieldShape)
		return 0
	}
	return v.Num
}

// Decimal reads a required number; integers are widened.
func (f *fields) Decimal(key string) float64 {
	v := f.get(key)
	if !present(v) {
		f.fail(key, ErrMissingField)
		return 0
	}
	return f.decimal(key, v)
}

func (f *fields) OptDecimal(key string) *float64 {
	v := f.get(key)
	if !present(v) {
		return nil
	}
	n := f.decimal(key, v)
	return &n
}

func (f *fields) boolean(key string, v gjson.Result) bool {
	if v.Type != gjson.True && v.Type != gjson.False {
		f.fail(key, ErrFieldShape)
		return false
	}
	return v.Type == gjson.True
}

func (f *fields) Bool(key string) bool {
	v := f.get(key)
	if !present(v) {
		f.fail(key, ErrMissingField)
		return false
	}
	return f.boolean(key, v)
}

func (f *fields) OptBool(key string) *bool {
	v := f.get(key)
	if !present(v) {
		return nil
	}
	b := f.boolean(key, v)
	return &b
}

// BoolOr reads an optional boolean with a default.
func (f *fields) BoolOr(key string, def bool) bool {
	if b := f.OptBool(key); b != nil {
		return *b
	}
	return def
}

// Str reads a string leniently: missing, null and non-string values all
// read as "".
func (f *fields) Str(key string) string {
	v := f.get(key)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// Localised prefers the key's "_Localised" companion when the journal
// provides one.
func (f *fields) Localised(key string) string {
	if s := f.Str(key + "_Localised"); s != "" {
		return s
	}
	return f.Str(key)
}

// Strings reads an optional list of strings.
func (f *fields) Strings(key string) []string {
	v := f.get(key)
	if !present(v) {
		return nil
	}
	if !v.IsArray() {
		f.fail(key, ErrFieldShape)
		return nil
	}
	items := v.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type != gjson.String {
			f.fail(key, ErrFieldShape)
			return nil
		}
		out = append(out, item.Str)
	}
	return out
}

// Each calls fn for every object in the optional list at key.
func (f *fields) Each(key string, fn func(item *fields)) {
	v := f.get(key)
	if !present(v) {
		return
	}
	if !v.IsArray() {
		f.fail(key, ErrFieldShape)
		return
	}
	for _, item := range v.Array() {
		if !item.IsObject() {
			f.fail(key, ErrFieldShape)
			return
		}
		fn(f.child(item))
	}
}

// IntMap reads an optional object of name to integer count, preserving the
// record's key order.
func (f *fields) IntMap(key string, fn func(name string, n int64)) {
	v := f.get(key)
	if !present(v) {
		return
	}
	if !v.IsObject() {
		f.fail(key, ErrFieldShape)
		return
	}
	v.ForEach(func(k, val gjson.Result) bool {
		n := f.integer(key+"."+k.Str, val)
		if f.Err() != nil {
			return false
		}
		fn(k.Str, n)
		return true
	})
}

// Coordinates reads a required three-element position and rounds each axis
// to the nearest 1/32 light year.
func (f *fields) Coordinates(key string) (x, y, z float64) {
	v := f.get(key)
	if !present(v) {
		f.fail(key, ErrMissingField)
		return 0, 0, 0
	}
	if !v.IsArray() {
		f.fail(key, ErrFieldShape)
		return 0, 0, 0
	}
	axes := v.Array()
	if len(axes) != 3 {
		f.fail(key, ErrFieldShape)
		return 0, 0, 0
	}
	return roundCoordinate(f.decimal(key, axes[0])),
		roundCoordinate(f.decimal(key, axes[1])),
		roundCoordinate(f.decimal(key, axes[2]))
}

func roundCoordinate(v float64) float64 {
	return math.Round(v*32) / 32
}

// sensibleHealth converts a 0-1 health fraction to a percentage, keeping one
// decimal place only when it is low.
func sensibleHealth(fraction float64) float64 {
	pct := fraction * 100
	if pct < 10 {
		return math.Round(pct*10) / 10
	}
	return math.Round(pct)
}
