package intern

import "testing"

func TestInternRoundTrip(t *testing.T) {
	in := New()
	id := in.Intern("Foo\\Bar")
	if got := in.Lookup(id); got != "Foo\\Bar" {
		t.Fatalf("got %q", got)
	}
	if again := in.Intern("Foo\\Bar"); again != id {
		t.Fatalf("expected same id on re-intern, got %d vs %d", again, id)
	}
}

func TestLowered(t *testing.T) {
	in := New()
	id := in.Intern("MyClass")
	low := in.Lowered(id)
	if in.Lookup(low) != "myclass" {
		t.Fatalf("got %q", in.Lookup(low))
	}
	// Idempotent: lowering an already-lowered id keeps it fixed.
	if in.Lowered(low) != low {
		t.Fatalf("lowered(lowered(x)) != lowered(x)")
	}
}

func TestDistinctStringsDistinctIds(t *testing.T) {
	in := New()
	a := in.Intern("a")
	b := in.Intern("b")
	if a == b {
		t.Fatalf("expected distinct ids")
	}
}
