package codebase

import (
	"testing"

	"github.com/yigitcukuren/mago-sub004/internal/intern"
)

func newClass(ix *Index, name string, parent string) *ClassLike {
	cl := &ClassLike{
		Kind:         KindClass,
		OriginalName: name,
		LoweredName:  ix.Interner().InternLowered(name),
		Methods:      map[intern.StringId]*FunctionLike{},
		Properties:   map[intern.StringId]*Property{},
	}
	if parent != "" {
		cl.DirectParentClass = ix.Interner().InternLowered(parent)
	}
	ix.AddClassLike(cl)
	return cl
}

func TestPopulateTransitiveClosure(t *testing.T) {
	in := intern.New()
	ix := New(in)
	newClass(ix, "Animal", "")
	newClass(ix, "Dog", "Animal")
	newClass(ix, "Puppy", "Dog")

	if err := ix.Populate(); err != nil {
		t.Fatalf("populate: %v", err)
	}

	puppy, _ := ix.ClassLikeByName("Puppy")
	animalId := in.InternLowered("Animal")
	dogId := in.InternLowered("Dog")
	if !puppy.AllParentClasses[animalId] {
		t.Fatalf("expected Puppy to transitively extend Animal")
	}
	if !puppy.AllParentClasses[dogId] {
		t.Fatalf("expected Puppy to extend Dog")
	}
	if !ix.IsClassSubtypeOf(in.InternLowered("Puppy"), animalId, false) {
		t.Fatalf("expected IsClassSubtypeOf(Puppy, Animal)")
	}
}

func TestPopulateDetectsCycle(t *testing.T) {
	in := intern.New()
	ix := New(in)
	a := newClass(ix, "A", "B")
	b := newClass(ix, "B", "A")
	_ = a
	_ = b

	err := ix.Populate()
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if _, ok := err.(CycleError); !ok {
		t.Fatalf("expected CycleError, got %T: %v", err, err)
	}
}

func TestCaseInsensitiveClassLookup(t *testing.T) {
	in := intern.New()
	ix := New(in)
	newClass(ix, "MyClass", "")
	if err := ix.Populate(); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if _, ok := ix.ClassLikeByName("myCLASS"); !ok {
		t.Fatalf("expected case-insensitive class lookup to succeed")
	}
}

func TestConstantFinalSegmentCaseSensitive(t *testing.T) {
	in := intern.New()
	ix := New(in)
	ix.AddConstant("App\\Config", "MAX_SIZE")
	if _, ok := ix.LookupConstant("app\\config", "MAX_SIZE"); !ok {
		t.Fatalf("expected namespace-insensitive lookup to succeed")
	}
	if _, ok := ix.LookupConstant("App\\Config", "max_size"); ok {
		t.Fatalf("expected final-segment lookup to be case-sensitive")
	}
}

func TestQueryBeforePopulateReportsUnpopulated(t *testing.T) {
	in := intern.New()
	ix := New(in)
	if ix.IsPopulated() {
		t.Fatalf("fresh index must not report populated")
	}
}
