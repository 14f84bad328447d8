package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/flatcat/document"
)

// groupNode builds an object from a reconstructed parquet group, taking
// members in schema order. Fields missing from the row are skipped.
func groupNode(row map[string]interface{}, fields []parquet.Field) (*document.Node, error) {
	members := make([]document.Member, 0, len(fields))
	for _, field := range fields {
		value, ok := row[field.Name()]
		if !ok {
			continue
		}
		node, err := fieldNode(value, field, field.Repeated())
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name(), err)
		}
		members = append(members, document.Member{Name: field.Name(), Value: node})
	}
	return document.NewObject(members...), nil
}

// fieldNode converts one field value. Repeated fields arrive as slices and
// become arrays whose elements are converted against the same field.
func fieldNode(value interface{}, field parquet.Field, repeated bool) (*document.Node, error) {
	if value == nil {
		return document.NewNull(), nil
	}

	if repeated {
		if items, ok := value.([]interface{}); ok {
			elems := make([]*document.Node, 0, len(items))
			for i, item := range items {
				node, err := fieldNode(item, field, false)
				if err != nil {
					return nil, fmt.Errorf("element %d: %w", i, err)
				}
				elems = append(elems, node)
			}
			return document.NewArray(elems...), nil
		}
	}

	// Groups recurse with their own field order; anything else, including
	// logical LIST and MAP shapes, is converted structurally.
	if children := field.Fields(); len(children) > 0 {
		if group, ok := value.(map[string]interface{}); ok {
			return groupNode(group, children)
		}
	}

	return document.FromValue(value, nil)
}
