package hcl

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/uibridge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL-specific implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeParams evaluates the raw descriptor param expressions and populates
// the provided Go struct using reflection. Fields are matched by their
// `param` tag; fields without a matching attribute keep their zero value.
// A descriptor attribute that matches no field is a configuration error.
func (c *Converter) DecodeParams(ctx context.Context, target any, params map[string]hcl.Expression) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting params decoding.", "attribute_count", len(params))

	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("params target must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	if structVal.Kind() != reflect.Struct {
		return fmt.Errorf("params target must point to a struct, got %s", structVal.Kind())
	}
	structType := structVal.Type()

	consumed := make(map[string]struct{}, len(params))

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		lookupName := field.Name
		if tag := field.Tag.Get("param"); tag != "" {
			lookupName = strings.Split(tag, ",")[0]
		}
		if lookupName == "-" {
			continue
		}

		expr, provided := params[lookupName]
		if !provided {
			continue
		}
		consumed[lookupName] = struct{}{}

		val, diags := expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("failed to evaluate param %q: %w", lookupName, diags)
		}
		if err := c.decode(ctx, val, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("failed to decode param %q: %w", lookupName, err)
		}
	}

	for name := range params {
		if _, ok := consumed[name]; !ok {
			return fmt.Errorf("unknown param %q: no matching field in params struct %s", name, structType)
		}
	}

	logger.Debug("Finished params decoding successfully.")
	return nil
}

// decode handles the conversion and decoding of a cty.Value into a Go pointer.
func (c *Converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}
