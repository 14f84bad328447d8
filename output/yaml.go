package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/flatcat/tabulate"
)

// YAMLFormatter outputs rows as a YAML sequence of mappings
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// SetOutput sets the output writer
func (y *YAMLFormatter) SetOutput(w io.Writer) {
	y.writer = w
}

// Format writes the rows as one YAML document. Mapping keys follow the
// header order and every value is a string.
func (y *YAMLFormatter) Format(t *tabulate.Table) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, row := range t.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i, cell := range row {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Header[i]},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cell},
			)
		}
		seq.Content = append(seq.Content, m)
	}

	enc := yaml.NewEncoder(y.writer)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return err
	}
	return enc.Close()
}
