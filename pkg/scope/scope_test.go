package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast/asttest"
)

func TestLoopDepthNesting(t *testing.T) {
	var d LoopDepth
	outer, inner := asttest.For(), asttest.While()

	d.Enter(outer)
	d.Enter(inner)
	assert.Equal(t, 2, d.Depth())

	d.Exit(inner)
	assert.True(t, d.InLoop(), "exiting the inner loop keeps the outer body in a loop")

	d.Exit(outer)
	assert.False(t, d.InLoop())
}

func TestLoopDepthNeverNegative(t *testing.T) {
	var d LoopDepth
	d.Exit(nil)
	d.Exit(nil)
	assert.Equal(t, 0, d.Depth())

	d.Enter(nil)
	assert.Equal(t, 1, d.Depth())
}

func TestLoopDepthMatchedPairsRestoreDepth(t *testing.T) {
	sequences := [][]bool{
		{true, false},
		{true, true, false, false},
		{true, true, false, true, false, false},
		{true, false, true, true, true, false, false, false},
	}
	for _, seq := range sequences {
		var d LoopDepth
		var stack []int
		for _, enter := range seq {
			if enter {
				stack = append(stack, d.Depth())
				d.Enter(nil)
				continue
			}
			d.Exit(nil)
			before := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			require.Equal(t, before, d.Depth())
		}
		assert.Zero(t, d.Depth())
	}
}

func TestRenderScopeNestedFunction(t *testing.T) {
	s := NewRenderScope("render", "ngOnInit")
	render := asttest.Method("render")
	callback := asttest.Arrow()

	s.Enter(render)
	s.Enter(render.Value)
	s.Enter(callback)

	name, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "render", name)

	s.Exit(callback)
	assert.True(t, s.Inside(), "inner function exit must not clear the render scope")

	s.Exit(render.Value)
	s.Exit(render)
	assert.False(t, s.Inside())
	assert.Zero(t, s.Depth())
}

func TestRenderScopeInnermostName(t *testing.T) {
	s := NewRenderScope("render", "componentDidMount")
	s.Enter(asttest.Func("render"))
	s.Enter(asttest.Func("componentDidMount"))

	name, _ := s.Current()
	assert.Equal(t, "componentDidMount", name)

	s.Exit(nil)
	name, _ = s.Current()
	assert.Equal(t, "render", name)
}

func TestRenderScopeIgnoresNonFunctionProperty(t *testing.T) {
	s := NewRenderScope("render")
	p := asttest.Prop("render", asttest.Str("not a function"))

	s.Enter(p)
	assert.False(t, s.Inside())
	assert.Equal(t, 1, s.Depth(), "a frame is still pushed so exit stays symmetric")
	s.Exit(p)
	assert.Zero(t, s.Depth())

	s.Exit(p)
	assert.Zero(t, s.Depth())
}

func TestBoundName(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"function declaration", asttest.Func("render"), "render"},
		{"anonymous function", asttest.FuncExpr(""), ""},
		{"method", asttest.Method("ngOnInit"), "ngOnInit"},
		{"object method", asttest.ObjMethod("componentDidUpdate"), "componentDidUpdate"},
		{"computed method", &ast.MethodDefinition{Key: asttest.Ident("render"), Computed: true}, ""},
		{"arrow", asttest.Arrow(), ""},
		{"nil method", (*ast.MethodDefinition)(nil), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoundName(tt.node))
		})
	}
}
