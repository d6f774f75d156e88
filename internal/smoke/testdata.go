package smoke

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Input is one fizzBuzz test datum in its textual form. Inputs that do not
// parse as integers exercise the instance-count fallback.
type Input string

// UnmarshalYAML accepts any scalar: 3, "3" and "" all decode.
func (in *Input) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: input must be a scalar", value.Line)
	}
	*in = Input(value.Value)
	return nil
}

// TestData is the fixed input set of the fizzBuzz case.
type TestData struct {
	Inputs []Input `yaml:"inputs"`
}

// DefaultTestData returns the built-in inputs: 3, 5, 15, 50, "" and 4.
func DefaultTestData() TestData {
	return TestData{Inputs: []Input{"3", "5", "15", "50", "", "4"}}
}

// LoadTestData reads test data from a YAML file.
func LoadTestData(path string) (TestData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return TestData{}, fmt.Errorf("read test data: %w", err)
	}
	return ParseTestData(b)
}

// ParseTestData decodes test data YAML.
func ParseTestData(b []byte) (TestData, error) {
	var data TestData
	if err := yaml.Unmarshal(b, &data); err != nil {
		return TestData{}, fmt.Errorf("parse test data: %w", err)
	}
	if len(data.Inputs) == 0 {
		return TestData{}, errors.New("parse test data: inputs list is empty")
	}
	return data, nil
}
