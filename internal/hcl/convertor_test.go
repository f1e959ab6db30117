package hcl

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	hcl2 "github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/require"
)

func exprs(t *testing.T, src string) map[string]hcl2.Expression {
	t.Helper()
	file, diags := hclsyntax.ParseConfig([]byte(src), "params.hcl", hcl2.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	attrs, diags := file.Body.JustAttributes()
	require.False(t, diags.HasErrors(), diags.Error())
	out := make(map[string]hcl2.Expression, len(attrs))
	for name, attr := range attrs {
		out[name] = attr.Expr
	}
	return out
}

func TestDecodeParamsByTag(t *testing.T) {
	type params struct {
		Greeting string   `param:"greeting"`
		Retries  int      `param:"retries"`
		Verbose  bool     `param:"verbose"`
		Tags     []string `param:"tags"`
	}

	var got params
	err := NewConverter().DecodeParams(context.Background(), &got, exprs(t, `
greeting = "hello"
retries  = 3
verbose  = true
tags     = ["a", "b"]
`))
	require.NoError(t, err)

	want := params{Greeting: "hello", Retries: 3, Verbose: true, Tags: []string{"a", "b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeParamsMissingAttributeKeepsZeroValue(t *testing.T) {
	type params struct {
		Greeting string `param:"greeting"`
		Footer   string `param:"footer"`
	}

	got := params{Footer: "preset"}
	err := NewConverter().DecodeParams(context.Background(), &got, exprs(t, `greeting = "hi"`))
	require.NoError(t, err)
	require.Equal(t, "hi", got.Greeting)
	require.Equal(t, "preset", got.Footer)
}

func TestDecodeParamsUnknownAttribute(t *testing.T) {
	type params struct {
		Greeting string `param:"greeting"`
	}

	var got params
	err := NewConverter().DecodeParams(context.Background(), &got, exprs(t, `
greeting = "hi"
typo     = "oops"
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown param "typo"`)
}

func TestDecodeParamsIgnoredField(t *testing.T) {
	type params struct {
		Internal string `param:"-"`
	}

	var got params
	err := NewConverter().DecodeParams(context.Background(), &got, exprs(t, `internal = "nope"`))
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown param "internal"`)
	require.Empty(t, got.Internal)
}

func TestDecodeParamsConvertsNumberToString(t *testing.T) {
	type params struct {
		Label string `param:"label"`
	}

	var got params
	err := NewConverter().DecodeParams(context.Background(), &got, exprs(t, `label = 42`))
	require.NoError(t, err)
	require.Equal(t, "42", got.Label)
}

func TestDecodeParamsRejectsNonPointerTarget(t *testing.T) {
	type params struct{}
	err := NewConverter().DecodeParams(context.Background(), params{}, nil)
	require.Error(t, err)

	err = NewConverter().DecodeParams(context.Background(), new(int), nil)
	require.Error(t, err)
}
