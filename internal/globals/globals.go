// Package globals seeds the fixed table of superglobal variables with
// structured types (spec §4.8, shapes extracted in §6.2), so the
// analyzer's starting block context for a top-level script already
// carries a typed `$_SERVER`, `$_GET`, and friends without a real
// runtime behind them.
package globals

import "github.com/yigitcukuren/mago-sub004/internal/types"

func nonEmptyString() *types.Union { return types.NewUnion(types.StringAtomic{NonEmpty: true}) }
func genericString() *types.Union  { return types.NewUnion(types.StringAtomic{}) }
func mixedUnion() *types.Union     { return types.MixedUnion() }

func required(t *types.Union) types.KnownItem { return types.KnownItem{Required: true, Type: t} }

// serverShape builds the $_SERVER keyed-array type: a closed set of
// required well-known keys (§6.2) plus a parametric tail for anything
// else the runtime might set.
func serverShape(startUnixTime int64) *types.Union {
	wellKnownNonEmpty := []string{
		"PHP_SELF", "GATEWAY_INTERFACE", "SERVER_ADDR", "SERVER_NAME",
		"SERVER_SOFTWARE", "SERVER_PROTOCOL", "REQUEST_METHOD",
	}
	wellKnownString := []string{
		"QUERY_STRING", "HTTPS", "CONTENT_LENGTH", "CONTENT_TYPE", "REMOTE_PORT",
	}
	known := map[string]types.KnownItem{}
	for _, k := range wellKnownNonEmpty {
		known[k] = required(nonEmptyString())
	}
	for _, k := range wellKnownString {
		known[k] = required(genericString())
	}
	known["REQUEST_TIME"] = required(types.NewUnion(types.Int{Variant: types.IntFrom, Lo: startUnixTime}))
	known["REQUEST_TIME_FLOAT"] = required(types.NewUnion(types.Float{}))

	return types.NewUnion(types.KeyedArray{
		Key:        nonEmptyString(),
		Value:      genericString(),
		KnownItems: known,
		NonEmpty:   true,
	})
}

// requestParamValue is the value type shared by $_GET/$_POST/$_REQUEST:
// a string, or a non-empty keyed array of strings or nested
// string-or-mixed keyed arrays (§6.2).
func requestParamValue() *types.Union {
	nestedMixed := types.NewUnion(types.KeyedArray{Key: requestParamKey(), Value: mixedUnion()})
	innerValue := types.NewUnion(append(
		append([]types.Atomic{}, types.StringAtomic{}),
		nestedMixed.Atomics...,
	)...)
	outer := types.KeyedArray{Key: requestParamKey(), Value: innerValue, NonEmpty: true}
	return types.NewUnion(append([]types.Atomic{types.StringAtomic{}}, outer)...)
}

func requestParamKey() *types.Union {
	return types.NewUnion(types.StringAtomic{NonEmpty: true}, types.Int{Variant: types.IntAny})
}

func requestSuperglobal() *types.Union {
	return types.NewUnion(types.KeyedArray{Key: requestParamKey(), Value: requestParamValue()})
}

// genericAssociativeSuperglobal covers $_COOKIE, $_SESSION, $_ENV,
// and (as a reasonable simplification) $_FILES: a non-empty_string-or-int
// keyed array of mixed values. The spec's §6.2 extract only details
// $_SERVER/$_GET/$_POST/$_REQUEST precisely; the rest share this shape.
func genericAssociativeSuperglobal() *types.Union {
	return types.NewUnion(types.KeyedArray{Key: requestParamKey(), Value: mixedUnion()})
}

// Seed returns the fixed table of superglobal variable names (including
// the leading `$`) to their structured types. startUnixTime lower-bounds
// $_SERVER['REQUEST_TIME'] (Open Question decision: captured once per
// analyzer run, not per file — see DESIGN.md).
func Seed(startUnixTime int64) map[string]*types.Union {
	return map[string]*types.Union{
		"$_SERVER":  serverShape(startUnixTime),
		"$_GET":     requestSuperglobal(),
		"$_POST":    requestSuperglobal(),
		"$_REQUEST": requestSuperglobal(),
		"$_COOKIE":  genericAssociativeSuperglobal(),
		"$_FILES":   genericAssociativeSuperglobal(),
		"$_SESSION": genericAssociativeSuperglobal(),
		"$_ENV":     genericAssociativeSuperglobal(),

		"$argc": types.NewUnion(types.Int{Variant: types.IntAny}),
		"$argv": types.NewUnion(types.List{Element: genericString()}),

		"$http_response_header": types.NewUnion(types.List{Element: genericString()}),
	}
}
