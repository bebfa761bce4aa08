package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

var paramsSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "chart_type", Required: true},
		{Name: "data_path", Required: true},
		{Name: "output_path", Required: true},
		{Name: "x_column"},
		{Name: "y_column"},
		{Name: "group_column"},
		{Name: "title"},
	},
}

// ParseHCL decodes an HCL parameters document. Attribute expressions may refer
// to environment variables as env.NAME.
func ParseHCL(src []byte, filename string) (*Params, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse parameters file: %s", diags.Error())
	}

	content, diags := file.Body.Content(paramsSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse parameters file: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envObject(os.Environ())},
	}

	var p Params
	fields := map[string]*string{
		"chart_type":   &p.ChartType,
		"data_path":    &p.DataPath,
		"output_path":  &p.OutputPath,
		"x_column":     &p.XColumn,
		"y_column":     &p.YColumn,
		"group_column": &p.GroupColumn,
		"title":        &p.Title,
	}
	for name, attr := range content.Attributes {
		s, err := attrString(attr, evalCtx)
		if err != nil {
			return nil, err
		}
		*fields[name] = s
	}
	return &p, nil
}

func attrString(attr *hcl.Attribute, evalCtx *hcl.EvalContext) (string, error) {
	val, diags := attr.Expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to evaluate %s: %s", attr.Name, diags.Error())
	}
	if val.IsNull() {
		return "", nil
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate %s: %w", attr.Name, err)
	}
	if !val.IsKnown() {
		return "", fmt.Errorf("failed to evaluate %s: value is unknown", attr.Name)
	}
	return val.AsString(), nil
}

// envObject exposes KEY=VALUE pairs as an object value.
func envObject(environ []string) cty.Value {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}
