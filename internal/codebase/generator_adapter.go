package codebase

import (
	"github.com/yigitcukuren/mago-sub004/internal/generator"
	"github.com/yigitcukuren/mago-sub004/internal/intern"
)

// ClassLikeExists implements generator.ClassIndex.
func (ix *Index) ClassLikeExists(name string) bool {
	_, ok := ix.ClassLikeByName(name)
	return ok
}

// ClassLikeKind implements generator.ClassIndex.
func (ix *Index) ClassLikeKind(name string) (generator.ClassLikeKind, bool) {
	cl, ok := ix.ClassLikeByName(name)
	if !ok {
		return 0, false
	}
	switch cl.Kind {
	case KindInterface:
		return generator.KindInterface, true
	case KindTrait:
		return generator.KindTrait, true
	case KindEnum:
		return generator.KindEnum, true
	default:
		return generator.KindClass, true
	}
}

// InternLowered implements generator.ClassIndex.
func (ix *Index) InternLowered(s string) intern.StringId {
	return ix.interner.InternLowered(s)
}

var _ generator.ClassIndex = (*Index)(nil)
