package expr

import (
	"log/slog"
	"math"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"
)

type lib struct{}

func (lib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Math(),
		ext.Strings(),
		ext.Lists(),

		// `lines` splits text into lines.
		// Example: lines(item.body).exists(l, l.startsWith("TODO")).
		cel.Function("lines",
			cel.Overload("lines_string", []*cel.Type{cel.StringType}, cel.ListType(cel.StringType),
				cel.UnaryBinding(func(text ref.Val) ref.Val {
					textValue, ok := text.(types.String).Value().(string)
					if !ok {
						return types.NewErr("lines: invalid string value")
					}

					return types.NewStringList(types.DefaultTypeAdapter, splitLines(textValue))
				}),
			),
		),

		// `lineCount` returns the number of lines in text.
		// Example: lineCount(item.body) > 3.
		cel.Function("lineCount",
			cel.Overload("line_count_string", []*cel.Type{cel.StringType}, cel.IntType,
				cel.UnaryBinding(func(text ref.Val) ref.Val {
					textValue, ok := text.(types.String).Value().(string)
					if !ok {
						return types.NewErr("lineCount: invalid string value")
					}

					return types.Int(len(splitLines(textValue)))
				}),
			),
		),

		// `yamlPath` parses YAML text and extracts a value using a YAML path.
		// Returns the value at the specified path, or null if the text is not
		// YAML or the path doesn't exist.
		// Example: yamlPath(item.body, "$.kind") == "Deployment".
		cel.Function("yamlPath",
			cel.Overload("yaml_path", []*cel.Type{cel.StringType, cel.StringType}, cel.DynType,
				cel.BinaryBinding(func(content, yamlPathExpr ref.Val) ref.Val {
					contentStr, ok := content.(types.String).Value().(string)
					if !ok {
						return types.NewErr("yamlPath: invalid content")
					}

					yamlPathStr, ok := yamlPathExpr.(types.String).Value().(string)
					if !ok {
						return types.NewErr("yamlPath: invalid yaml path")
					}

					logger := slog.With(slog.String("yamlPath", yamlPathStr))

					path, err := yaml.PathString(yamlPathStr)
					if err != nil {
						logger.Debug("invalid YAML path, returning null",
							slog.Any("error", err),
						)

						return types.NullValue
					}

					var value any

					err = path.Read(strings.NewReader(contentStr), &value)
					if err != nil {
						logger.Debug("failed to extract value from YAML, returning null",
							slog.Any("error", err),
						)

						return types.NullValue
					}

					return ConvertToCELValue(value)
				}),
			),
		),
	}
}

func (lib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return []string{}
	}

	return strings.Split(s, "\n")
}

// ConvertToCELValue converts a Go value to a CEL value.
// Handles common YAML types and returns null for unsupported types.
//
//nolint:ireturn // Following CEL's function signature.
func ConvertToCELValue(value any) ref.Val {
	switch v := value.(type) {
	case nil:
		return types.NullValue

	case bool:
		return types.Bool(v)

	case int:
		return types.Int(v)

	case int64:
		return types.Int(v)

	case uint64:
		// Check for overflow when converting to int64.
		if v > math.MaxInt64 {
			return types.Double(float64(v))
		}

		return types.Int(int64(v))

	case float64:
		return types.Double(v)

	case string:
		return types.String(v)

	case []any:
		celValues := make([]ref.Val, len(v))
		for i, item := range v {
			celValues[i] = ConvertToCELValue(item)
		}

		return types.NewDynamicList(types.DefaultTypeAdapter, celValues)

	case map[string]any:
		celMap := make(map[ref.Val]ref.Val, len(v))
		for key, val := range v {
			celMap[types.String(key)] = ConvertToCELValue(val)
		}

		return types.NewDynamicMap(types.DefaultTypeAdapter, celMap)

	default:
		// For unsupported types, return null instead of erroring.
		return types.NullValue
	}
}
