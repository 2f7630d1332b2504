package parser

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/recolor/internal/color"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// buildEvalContext creates an HCL evaluation context exposing the given
// entries as palette.<name> together with the color functions.
func buildEvalContext(entries []Entry) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(entries))
	for _, e := range entries {
		vals[e.Name] = cty.StringVal(e.Color.String())
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": cty.ObjectVal(vals),
		},
		Functions: map[string]function.Function{
			"brighten": makeLightnessFunc("Brightens a color by the given percentage (-1.0 to 1.0)", color.Brighten),
			"darken":   makeLightnessFunc("Darkens a color by the given percentage (-1.0 to 1.0)", color.Darken),
			"alpha":    makeAlphaFunc(),
		},
	}
}

// makeLightnessFunc creates an HCL function shifting HSL lightness.
// Usage: brighten("#hex", 0.1) or darken(palette.color, 0.1)
func makeLightnessFunc(description string, shift func(color.Color, float64) color.Color) function.Function {
	return function.New(&function.Spec{
		Description: description,
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
			{
				Name: "percentage",
				Type: cty.Number,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			pct, _ := args[1].AsBigFloat().Float64()

			c, err := parseColor(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}

			return cty.StringVal(shift(c, pct).String()), nil
		},
	})
}

// makeAlphaFunc creates an HCL function replacing a color's alpha.
// Usage: alpha(palette.base03, 0.5)
func makeAlphaFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Returns the color with the given alpha (0.0 to 1.0)",
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
			{
				Name: "alpha",
				Type: cty.Number,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			a, _ := args[1].AsBigFloat().Float64()

			c, err := parseColor(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}

			return cty.StringVal(c.WithAlpha(a).String()), nil
		},
	})
}
