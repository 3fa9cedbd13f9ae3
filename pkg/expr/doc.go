// Package expr provides CEL (Common Expression Language) functionality
// for selecting carousel items.
//
// It creates CEL environments with custom functions for:
//   - Text inspection (lines, lineCount)
//   - YAML content extraction (yamlPath)
//
// CEL expressions have access to variables:
//   - `item` (map): the item's `title` (string), `body` (string) and
//     `index` (int)
//   - `count` (int): the number of items before filtering
package expr
