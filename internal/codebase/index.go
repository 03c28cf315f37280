// Package codebase holds the populated metadata for classes, interfaces,
// traits, enums, functions and constants that every analysis pass
// queries by case-sensitivity-aware name. The index is built once by an
// external scanner, populated (transitive closures computed) by
// Populate, and is read-only for the remainder of a run.
package codebase

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/yigitcukuren/mago-sub004/internal/assertion"
	"github.com/yigitcukuren/mago-sub004/internal/intern"
	"github.com/yigitcukuren/mago-sub004/internal/types"
	"github.com/yigitcukuren/mago-sub004/internal/typeops"
)

// ClassLikeKind distinguishes the four classlike declarations.
type ClassLikeKind int

const (
	KindClass ClassLikeKind = iota
	KindInterface
	KindTrait
	KindEnum
)

// MemberId names a method/property within its declaring classlike.
type MemberId struct {
	Class intern.StringId
	Name  intern.StringId
}

// TemplateTypeDecl is one `@template` declaration on a classlike.
type TemplateTypeDecl struct {
	Name        string
	Constraint  *types.Union
	Variance    typeops.Variance
	Default     *types.Union
}

// ClassLike is the populated metadata for one class/interface/trait/enum.
type ClassLike struct {
	Kind             ClassLikeKind
	OriginalName     string
	LoweredName      intern.StringId
	IsAbstract       bool
	IsFinal          bool
	TemplateTypes    []TemplateTypeDecl
	DirectParentClass intern.StringId // Invalid if none
	DirectParentInterfaces []intern.StringId
	UsedTraits       []intern.StringId

	// Populated fields (valid only once Index.Populate has run).
	AllParentClasses     map[intern.StringId]bool
	AllParentInterfaces  map[intern.StringId]bool
	AppearingMethodIds    map[intern.StringId]MemberId
	DeclaringMethodIds    map[intern.StringId]MemberId
	AppearingPropertyIds  map[intern.StringId]MemberId
	DeclaringPropertyIds  map[intern.StringId]MemberId
	Constants             map[intern.StringId]*types.Union
	EnumCases             map[intern.StringId]*types.Union // case name -> EnumCase union
	TemplateExtendedParameters map[intern.StringId][]*types.Union // ancestor -> specialized args

	Methods    map[intern.StringId]*FunctionLike
	Properties map[intern.StringId]*Property
}

// Property is a declared (possibly inherited) class property.
type Property struct {
	Name     intern.StringId
	Type     *types.Union
	IsStatic bool
}

// FunctionLikeContainer selects the namespace a FunctionLike lives in:
// empty for a global function, a source id for a closure, or a
// classlike name for a method.
type FunctionLikeContainer struct {
	IsGlobal  bool
	SourceId  intern.StringId // valid for a closure
	ClassName intern.StringId // valid for a method
}

// FunctionLikeKey is the composite key of function_likes.
type FunctionLikeKey struct {
	Container FunctionLikeContainer
	Name      intern.StringId
}

// AssertionTag is one @assert/@assert-if-true/@assert-if-false
// declaration attached to a function-like's metadata (SPEC_FULL.md §3).
type AssertionTag struct {
	ParamIndex  int
	Assertion   assertion.Assertion
	OnlyIfTrue  bool
	OnlyIfFalse bool
}

// FunctionLike is the populated metadata for a function/method/closure.
type FunctionLike struct {
	Name           intern.StringId
	Container      FunctionLikeContainer
	Signature      *types.Signature
	TemplateTypes  []TemplateTypeDecl
	IsAbstract     bool
	IsStatic       bool
	IsPure         bool
	MutationFree   bool
	Deprecated     bool
	Internal       bool
	ThrowsTypes    []*types.Union
	Assertions     []AssertionTag

	// ThisOut / IfThisIs carry the @this-out / @if-this-is types
	// (SPEC_FULL.md §3 supplement); call analysis does not read them.
	IfThisIs *types.Union
	ThisOut  *types.Union

	// ParamOut[i] is the post-call narrowed type of the i-th parameter
	// when present (by-ref output narrowing, SPEC_FULL.md §3 supplement).
	ParamOut map[int]*types.Union
}

// Constant is a populated global or namespaced constant.
type Constant struct {
	Name intern.StringId
	Type *types.Union
}

// Index is the populated codebase index. Safe for concurrent read
// access once Populate has returned; the interner and index are shared
// by reference across analysis workers per the design notes' §5
// concurrency model.
type Index struct {
	mu sync.RWMutex

	// BuildID stamps this index instance. Artifacts recorded by an
	// analyzer run are keyed by span only, not by BuildID, but callers
	// that persist artifacts across runs (e.g. an LSP-style cache) can
	// compare BuildID to fast-fail a lookup against a stale index.
	BuildID uuid.UUID

	interner *intern.Interner

	classlikes map[intern.StringId]*ClassLike
	functions  map[FunctionLikeKey]*FunctionLike
	constants  map[string]*Constant // keyed by lowered-namespace\FinalSegment

	directDescendants map[intern.StringId]map[intern.StringId]bool

	populated bool
}

// New returns an empty index bound to in. The interner must outlive the
// index.
func New(in *intern.Interner) *Index {
	return &Index{
		BuildID:           uuid.New(),
		interner:          in,
		classlikes:        make(map[intern.StringId]*ClassLike),
		functions:         make(map[FunctionLikeKey]*FunctionLike),
		constants:         make(map[string]*Constant),
		directDescendants: make(map[intern.StringId]map[intern.StringId]bool),
	}
}

// Interner returns the interner this index was built against.
func (ix *Index) Interner() *intern.Interner { return ix.interner }

// AddClassLike registers cl keyed by its lowercased name. Must be
// called before Populate.
func (ix *Index) AddClassLike(cl *ClassLike) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.classlikes[cl.LoweredName] = cl
}

// AddFunctionLike registers fn. Must be called before Populate.
func (ix *Index) AddFunctionLike(fn *FunctionLike) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.functions[FunctionLikeKey{Container: fn.Container, Name: fn.Name}] = fn
}

// AddConstant registers c under its case-sensitivity-aware key: the
// namespace segments are lowercased, the final segment is kept as-is
// per spec §3.1.
func (ix *Index) AddConstant(namespace string, finalName string) *Constant {
	key := constantKey(namespace, finalName)
	c := &Constant{Name: ix.interner.Intern(finalName)}
	ix.mu.Lock()
	ix.constants[key] = c
	ix.mu.Unlock()
	return c
}

func constantKey(namespace, finalName string) string {
	return fmt.Sprintf("%s\\%s", lowerAscii(namespace), finalName)
}

func lowerAscii(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// LookupConstant resolves a constant by its namespace-case-insensitive,
// final-segment-case-sensitive key, per spec §3.1.
func (ix *Index) LookupConstant(namespace, finalName string) (*Constant, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	c, ok := ix.constants[constantKey(namespace, finalName)]
	return c, ok
}

// ClassLikeByName resolves a classlike by name, case-insensitively, per
// spec §3.1's "class-like names compare case-insensitively".
func (ix *Index) ClassLikeByName(name string) (*ClassLike, bool) {
	id := ix.interner.InternLowered(name)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	cl, ok := ix.classlikes[id]
	return cl, ok
}

func (ix *Index) classLikeById(id intern.StringId) (*ClassLike, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	cl, ok := ix.classlikes[id]
	return cl, ok
}

// FunctionLikeByName resolves a global function, case-insensitively.
func (ix *Index) FunctionLikeByName(name string) (*FunctionLike, bool) {
	id := ix.interner.InternLowered(name)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	fn, ok := ix.functions[FunctionLikeKey{Container: FunctionLikeContainer{IsGlobal: true}, Name: id}]
	return fn, ok
}

// MethodByName resolves a method of className, case-insensitively for
// both segments, per spec §3.1.
func (ix *Index) MethodByName(className, methodName string) (*FunctionLike, bool) {
	classId := ix.interner.InternLowered(className)
	methodId := ix.interner.InternLowered(methodName)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	fn, ok := ix.functions[FunctionLikeKey{Container: FunctionLikeContainer{ClassName: classId}, Name: methodId}]
	return fn, ok
}

// IsPopulated reports whether Populate has completed. Every query that
// depends on transitive closures must check this first per spec §3.3's
// lifecycle contract.
func (ix *Index) IsPopulated() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.populated
}

// SortedClassLikeNames returns every registered classlike's lowered
// name id in a deterministic order, used by tests and by diagnostic
// sorting.
func (ix *Index) SortedClassLikeNames() []intern.StringId {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]intern.StringId, 0, len(ix.classlikes))
	for id := range ix.classlikes {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
