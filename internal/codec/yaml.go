package codec

import (
	"fmt"
	"io"

	"glpiexplorer/internal/engine"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Export writes the report as YAML
func (c *YAMLCodec) Export(report engine.Report, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&report); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
