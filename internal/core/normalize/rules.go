package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules is the on-disk rule set. Each section feeds one pass of the
// normalizer, in the order the passes run.
type Rules struct {
	// Exact maps a canonical value to the variant spellings that collapse
	// into it. Matching ignores case and whitespace.
	Exact map[string][]string `yaml:"exact"`
	// Priority rules fire when every keyword is contained in the value.
	// Lower priority numbers are checked first.
	Priority []PriorityRule `yaml:"priority"`
	// Combinations fire when every keyword is contained, after all
	// priority rules have been tried.
	Combinations []CombinationRule `yaml:"combinations"`
	// Single rules fire on a single contained keyword, case-sensitively.
	Single []SingleRule `yaml:"single"`
	// Brackets lists keywords whose bracketed suffix is stripped, turning
	// "광고(네이버)" into "광고".
	Brackets []string `yaml:"brackets"`
}

type PriorityRule struct {
	Priority int      `yaml:"priority"`
	Keywords []string `yaml:"keywords"`
	Result   string   `yaml:"result"`
}

type CombinationRule struct {
	Keywords []string `yaml:"keywords"`
	Result   string   `yaml:"result"`
}

type SingleRule struct {
	Keyword string `yaml:"keyword"`
	Result  string `yaml:"result"`
}

// LoadRules reads a YAML rule file. A missing file is the caller's problem
// to classify; os.IsNotExist works on the returned error.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse normalizer rules %s: %w", path, err)
	}
	return &rules, nil
}
