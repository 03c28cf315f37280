package globals

import (
	"testing"

	"github.com/yigitcukuren/mago-sub004/internal/types"
)

func TestSeedIncludesServerAndRequestSuperglobals(t *testing.T) {
	seeded := Seed(1700000000)
	for _, name := range []string{"$_SERVER", "$_GET", "$_POST", "$_REQUEST", "$_COOKIE", "$_FILES", "$_SESSION", "$_ENV", "$argc", "$argv", "$http_response_header"} {
		if _, ok := seeded[name]; !ok {
			t.Errorf("expected %s to be seeded", name)
		}
	}
}

func TestServerRequestTimeIsIntFromStartTime(t *testing.T) {
	seeded := Seed(1700000000)
	server := seeded["$_SERVER"]
	ka, ok := server.SingleAtomic().(types.KeyedArray)
	if !ok {
		t.Fatalf("expected $_SERVER to be a single keyed-array atomic")
	}
	item, ok := ka.KnownItems["REQUEST_TIME"]
	if !ok {
		t.Fatalf("expected a known REQUEST_TIME key")
	}
	intAtom, ok := item.Type.SingleAtomic().(types.Int)
	if !ok || intAtom.Variant != types.IntFrom || intAtom.Lo != 1700000000 {
		t.Fatalf("expected REQUEST_TIME to be int<1700000000, max>, got %v", item.Type)
	}
}
