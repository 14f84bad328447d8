package reader

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/flatcat/document"
)

// maxAliasDepth stops alias chains that refer back to themselves.
const maxAliasDepth = 64

// errExcessiveAliasing is returned when alias expansion dominates the
// document, as in a "billion laughs" file.
var errExcessiveAliasing = errors.New("document contains excessive aliasing")

// yamlDecoder converts a yaml.Node tree. It counts every node it builds and
// how many of them came from alias expansion, so that a small file cannot
// expand into an enormous document.
type yamlDecoder struct {
	decodeCount int
	aliasCount  int
}

// allowedAliasRatio mirrors the limits yaml.v3 applies when decoding into
// Go values: small documents may be almost entirely aliases, large ones
// only a tenth.
func allowedAliasRatio(decodeCount int) float64 {
	switch {
	case decodeCount <= 400000:
		return 0.99
	case decodeCount >= 4000000:
		return 0.10
	default:
		return 0.10 + 0.89*(1-float64(decodeCount-400000)/3600000)
	}
}

// parseYAML decodes the first YAML document through yaml.Node so mapping
// keys keep their source order. An empty stream is a null document.
func parseYAML(data []byte) (*document.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return document.NewNull(), nil
	}
	d := &yamlDecoder{}
	return d.node(&root, 0)
}

func (d *yamlDecoder) node(n *yaml.Node, aliases int) (*document.Node, error) {
	d.decodeCount++
	if aliases > 0 {
		d.aliasCount++
	}
	if d.aliasCount > 100 && d.decodeCount > 1000 &&
		float64(d.aliasCount)/float64(d.decodeCount) > allowedAliasRatio(d.decodeCount) {
		return nil, fmt.Errorf("line %d: %w", n.Line, errExcessiveAliasing)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return document.NewNull(), nil
		}
		return d.node(n.Content[0], aliases)

	case yaml.MappingNode:
		members := make([]document.Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			child, err := d.node(val, aliases)
			if err != nil {
				return nil, err
			}
			members = append(members, document.Member{Name: key.Value, Value: child})
		}
		return document.NewObject(members...), nil

	case yaml.SequenceNode:
		elems := make([]*document.Node, 0, len(n.Content))
		for _, c := range n.Content {
			child, err := d.node(c, aliases)
			if err != nil {
				return nil, err
			}
			elems = append(elems, child)
		}
		return document.NewArray(elems...), nil

	case yaml.AliasNode:
		if aliases >= maxAliasDepth || n.Alias == nil {
			return nil, fmt.Errorf("line %d: alias nesting too deep", n.Line)
		}
		return d.node(n.Alias, aliases+1)

	case yaml.ScalarNode:
		return yamlScalar(n)

	default:
		return nil, errors.New("unknown YAML node kind")
	}
}

func yamlScalar(n *yaml.Node) (*document.Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return document.NewNull(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return document.NewBool(b), nil
	case "!!int", "!!float":
		return document.NewNumber(n.Value), nil
	default:
		return document.NewString(n.Value), nil
	}
}
