// Package flatten turns a document tree into a sequence of flat records.
//
// Traversal keeps one accumulator per Flatten call. Every object member and
// array element writes its scalars into that same accumulator, and the
// emission rule decides when a copy of the accumulator becomes a record.
//
// Path keys join member names with "." and append "[i]" for array
// positions:
//
//	{"a":{"b":[{"c":1}]}}  ->  a.b[0].c = 1
package flatten

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/vegasq/flatcat/document"
)

// EmitRule decides after which completed structures the accumulator is
// copied into the output.
type EmitRule int

const (
	// EmitEveryLevel emits after every object or array finishes, as long as
	// the accumulator holds at least one field. Outer levels therefore repeat
	// the fields of inner levels as supersets.
	EmitEveryLevel EmitRule = iota
	// EmitTopLevel emits once, when the root structure finishes.
	EmitTopLevel
)

func (r EmitRule) String() string {
	switch r {
	case EmitEveryLevel:
		return "levels"
	case EmitTopLevel:
		return "top"
	default:
		return "EmitRule(" + strconv.Itoa(int(r)) + ")"
	}
}

// ParseEmitRule maps the names "levels" and "top" to a rule.
func ParseEmitRule(s string) (EmitRule, bool) {
	switch s {
	case "levels", "":
		return EmitEveryLevel, true
	case "top":
		return EmitTopLevel, true
	default:
		return 0, false
	}
}

// shouldEmit reports whether a structure finishing at depth produces a
// record. depth is zero for the root.
func (r EmitRule) shouldEmit(depth int) bool {
	if r == EmitTopLevel {
		return depth == 0
	}
	return true
}

// Option configures a Flattener.
type Option func(*Flattener)

// WithEmitRule selects the emission rule. The default is EmitEveryLevel.
func WithEmitRule(rule EmitRule) Option {
	return func(f *Flattener) { f.rule = rule }
}

// WithLogger sets the logger used for per-record debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Flattener) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Flattener holds flattening options. It keeps no per-call state and may be
// reused.
type Flattener struct {
	rule   EmitRule
	logger *zap.Logger
}

// New creates a Flattener.
func New(opts ...Option) *Flattener {
	f := &Flattener{rule: EmitEveryLevel, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Rule returns the emission rule in use.
func (f *Flattener) Rule() EmitRule { return f.rule }

// Flatten walks doc and returns every emitted record in emission order.
// A nil document or a bare scalar yields no records.
func (f *Flattener) Flatten(doc *document.Node) []Record {
	if doc == nil {
		return nil
	}
	w := &walker{
		rule:   f.rule,
		acc:    NewRecord(),
		logger: f.logger,
	}
	w.walk(doc, "", 0)
	return w.out
}

// Flatten walks doc with the default options.
func Flatten(doc *document.Node) []Record {
	return New().Flatten(doc)
}

// walker is the mutable state of one Flatten call. acc is shared by every
// recursive step so later siblings see the fields of earlier ones.
type walker struct {
	rule   EmitRule
	acc    *Record
	out    []Record
	logger *zap.Logger
}

func (w *walker) walk(n *document.Node, prefix string, depth int) {
	switch n.Kind() {
	case document.Object:
		for _, m := range n.Members() {
			w.walk(m.Value, memberKey(prefix, m.Name), depth+1)
		}
		w.finish(depth)
	case document.Array:
		for i, e := range n.Elements() {
			w.walk(e, elementKey(prefix, i), depth+1)
		}
		w.finish(depth)
	default:
		w.acc.Set(prefix, n.Render())
	}
}

// finish applies the emission rule once a structure has been fully visited.
func (w *walker) finish(depth int) {
	if w.acc.Len() == 0 || !w.rule.shouldEmit(depth) {
		return
	}
	w.out = append(w.out, w.acc.Clone())
	w.logger.Debug("record emitted",
		zap.Int("depth", depth),
		zap.Int("fields", w.acc.Len()),
		zap.Int("records", len(w.out)),
	)
}

func memberKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func elementKey(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}
