// Package value defines the runtime value sum type and the lexically
// scoped environment frames the interpreter evaluates against
// (spec.md §4.6). A Value is one of a small closed set of concrete
// types; there is no user-extensible variant.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"wfl/internal/ast"
	"wfl/internal/source"
)

// Kind identifies which concrete Value a runtime slot holds.
type Kind int

const (
	KindNumber Kind = iota
	KindInteger
	KindText
	KindBool
	KindNull
	KindList
	KindObject
	KindFunction
	KindNativeFunction
	KindFileHandle
	KindHttpResponse
	KindDatabaseHandle
	KindDateTime
	KindPattern
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindNull:
		return "nothing"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	case KindFunction:
		return "action"
	case KindNativeFunction:
		return "native action"
	case KindFileHandle:
		return "file handle"
	case KindHttpResponse:
		return "http response"
	case KindDatabaseHandle:
		return "database handle"
	case KindDateTime:
		return "date time"
	case KindPattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// Value is the runtime sum type every expression evaluates to.
type Value interface {
	Kind() Kind
	String() string
}

// Number is a 64-bit float.
type Number struct{ Val float64 }

func (Number) Kind() Kind { return KindNumber }
func (n Number) String() string {
	return strconv.FormatFloat(n.Val, 'g', -1, 64)
}

// Integer is a 64-bit signed integer, distinct from Number until an
// operation forces a coercion (spec.md §4.7 arithmetic coercion).
type Integer struct{ Val int64 }

func (Integer) Kind() Kind      { return KindInteger }
func (i Integer) String() string { return strconv.FormatInt(i.Val, 10) }

// Text wraps an immutable string. String literals arrive interned by the
// lexer; text built at run time is not interned.
type Text struct{ Val string }

func (Text) Kind() Kind        { return KindText }
func (t Text) String() string { return t.Val }

// Bool is a boolean.
type Bool struct{ Val bool }

func (Bool) Kind() Kind        { return KindBool }
func (b Bool) String() string { return strconv.FormatBool(b.Val) }

// Null is the single "nothing" value.
type Null struct{}

func (Null) Kind() Kind        { return KindNull }
func (Null) String() string   { return "nothing" }

// List is a shared, mutable, ordered sequence. Equality on List is
// reference identity (spec.md §4.6), so List is always held behind a
// pointer even though the struct itself is small.
type List struct {
	Elements []Value
}

func (*List) Kind() Kind { return KindList }
func (l *List) String() string {
	return debugJoin(elementStrings(l.Elements), "[", "]")
}

// Object is a shared, mutable, insertion-ordered name→value mapping.
type Object struct {
	Keys   []string
	Values map[string]Value
}

func NewObject() *Object {
	return &Object{Values: map[string]Value{}}
}

func (*Object) Kind() Kind { return KindObject }

func (o *Object) Get(name string) (Value, bool) {
	v, ok := o.Values[name]
	return v, ok
}

func (o *Object) Set(name string, v Value) {
	if _, ok := o.Values[name]; !ok {
		o.Keys = append(o.Keys, name)
	}
	o.Values[name] = v
}

func (o *Object) String() string {
	parts := make([]string, len(o.Keys))
	for i, k := range o.Keys {
		parts[i] = k + ": " + debugText(o.Values[k])
	}
	return debugJoin(parts, "[", "]")
}

// Function is a closure: parameter list, body, and the environment
// active at `define action` time, captured weakly so closures never
// keep their own defining scope alive (spec.md §4.6 invariant).
type Function struct {
	Name    string
	Params  []ast.Param
	Body    []ast.Statement
	Env     *WeakEnv
	DefSite *source.Location
}

func (*Function) Kind() Kind     { return KindFunction }
func (f *Function) String() string { return "action " + f.Name }

// NativeFunction is a standard-library action identified by name and
// arity; its implementation lives in the stdlib registry, not here.
type NativeFunction struct {
	Name  string
	Arity int
}

func (NativeFunction) Kind() Kind        { return KindNativeFunction }
func (n NativeFunction) String() string { return "native action " + n.Name }

// FileHandle is an opaque resource token over an open OS file.
type FileHandle struct {
	ID     uuid.UUID
	Path   string
	Mode   string
	Closed bool
	Handle interface{} // *os.File, held as interface{} to keep this package I/O-agnostic
}

// NewFileHandle mints a FileHandle with a fresh identity token.
func NewFileHandle(path, mode string, handle interface{}) *FileHandle {
	return &FileHandle{ID: uuid.New(), Path: path, Mode: mode, Handle: handle}
}

func (*FileHandle) Kind() Kind        { return KindFileHandle }
func (f *FileHandle) String() string { return "file handle " + f.Path }

// HttpResponse wraps a completed HTTP round trip's observable fields.
type HttpResponse struct {
	ID         uuid.UUID
	StatusCode int
	Body       string
	Headers    map[string]string
}

func (*HttpResponse) Kind() Kind        { return KindHttpResponse }
func (h *HttpResponse) String() string { return fmt.Sprintf("http response %d", h.StatusCode) }

// DatabaseHandle is an opaque resource token over an open database
// connection.
type DatabaseHandle struct {
	ID     uuid.UUID
	DSN    string
	Closed bool
	Handle interface{} // *gorm.DB
}

// NewDatabaseHandle mints a DatabaseHandle with a fresh identity token.
func NewDatabaseHandle(dsn string, handle interface{}) *DatabaseHandle {
	return &DatabaseHandle{ID: uuid.New(), DSN: dsn, Handle: handle}
}

func (*DatabaseHandle) Kind() Kind        { return KindDatabaseHandle }
func (d *DatabaseHandle) String() string { return "database handle" }

// DateTime wraps a point in time as seconds since the Unix epoch plus
// a fixed display layout, avoiding a direct time.Time field so
// equality stays a plain struct comparison.
type DateTime struct {
	Unix   int64
	Layout string
}

func (DateTime) Kind() Kind        { return KindDateTime }
func (d DateTime) String() string { return strconv.FormatInt(d.Unix, 10) }

// Pattern is a compiled matcher (spec.md pattern-matching sugar).
type Pattern struct {
	Source   string
	Compiled interface{} // *regexp.Regexp
}

func (*Pattern) Kind() Kind        { return KindPattern }
func (p *Pattern) String() string { return "pattern /" + p.Source + "/" }

// Truthy implements spec.md's truthiness rules: Bool uses its value;
// Null is false; numeric zero/NaN is false; empty text/list/object is
// false; everything else is true.
func Truthy(v Value) bool {
	switch n := v.(type) {
	case Bool:
		return n.Val
	case Null:
		return false
	case Number:
		return n.Val != 0 && n.Val == n.Val // NaN != NaN
	case Integer:
		return n.Val != 0
	case Text:
		return n.Val != ""
	case *List:
		return len(n.Elements) > 0
	case *Object:
		return len(n.Keys) > 0
	default:
		return true
	}
}

// Equal implements spec.md's equality rules: structural for
// primitives, reference-identity for mutable containers (List,
// Object) and resource handles.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Number:
		switch y := b.(type) {
		case Number:
			return x.Val == y.Val
		case Integer:
			return x.Val == float64(y.Val)
		}
		return false
	case Integer:
		switch y := b.(type) {
		case Integer:
			return x.Val == y.Val
		case Number:
			return float64(x.Val) == y.Val
		}
		return false
	case Text:
		y, ok := b.(Text)
		return ok && x.Val == y.Val
	case Bool:
		y, ok := b.(Bool)
		return ok && x.Val == y.Val
	case Null:
		_, ok := b.(Null)
		return ok
	case *List:
		y, ok := b.(*List)
		return ok && x == y
	case *Object:
		y, ok := b.(*Object)
		return ok && x == y
	case *Function:
		y, ok := b.(*Function)
		return ok && x == y
	case *FileHandle:
		y, ok := b.(*FileHandle)
		return ok && x == y
	case *DatabaseHandle:
		y, ok := b.(*DatabaseHandle)
		return ok && x == y
	case *Pattern:
		y, ok := b.(*Pattern)
		return ok && x == y
	default:
		return false
	}
}

// debugMaxElements and debugMaxChars bound the text form used when
// `with` concatenates a List or Object (spec.md §4.7).
const (
	debugMaxElements = 16
	debugMaxChars    = 128
)

// ToDisplayText renders v the way `display` and `with` concatenation
// do: numbers use their shortest round-trip form, Null becomes empty
// text, everything else uses its own String(), truncated for
// containers.
func ToDisplayText(v Value) string {
	if _, ok := v.(Null); ok {
		return ""
	}
	if t, ok := v.(Text); ok {
		return t.Val
	}
	return debugText(v)
}

func debugText(v Value) string {
	s := v.String()
	if len(s) > debugMaxChars {
		return s[:debugMaxChars] + "..."
	}
	return s
}

func elementStrings(elems []Value) []string {
	n := len(elems)
	truncated := n > debugMaxElements
	if truncated {
		n = debugMaxElements
	}
	out := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, debugText(elems[i]))
	}
	if truncated {
		out = append(out, "...")
	}
	return out
}

func debugJoin(parts []string, open, close string) string {
	s := open + strings.Join(parts, ", ") + close
	if len(s) > debugMaxChars {
		return s[:debugMaxChars] + "..."
	}
	return s
}
