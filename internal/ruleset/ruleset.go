// Package ruleset loads rule-table overrides from YAML. Files are checked
// against an embedded CUE schema before they are turned into a
// scoring.Table.
package ruleset

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/hackerhouse/hhboard/internal/scoring"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// ErrInvalidRuleSet wraps every schema or table construction failure.
var ErrInvalidRuleSet = errors.New("invalid rule set")

// File is the on-disk shape of a rule-table override.
type File struct {
	Rules       []RuleSpec                    `yaml:"rules,omitempty"`
	Defaults    map[string]int                `yaml:"defaults,omitempty"`
	Cap         int                           `yaml:"cap,omitempty"`
	Multipliers map[string]map[string]float64 `yaml:"multipliers,omitempty"`
}

// RuleSpec is one rule as written in a rule-set file.
type RuleSpec struct {
	Category    string   `yaml:"category"`
	Description string   `yaml:"description"`
	Points      int      `yaml:"points"`
	Keywords    []string `yaml:"keywords,omitempty,flow"`
}

// Validator checks rule-set documents against the embedded schema
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema
func NewValidator() (*Validator, error) {
	content, err := schemaFS.ReadFile("schemas/ruleset.cue")
	if err != nil {
		return nil, fmt.Errorf("could not read embedded schema: %w", err)
	}

	ctx := cuecontext.New()
	inst := ctx.CompileBytes(content, cue.Filename("ruleset.cue"))
	if err := inst.Err(); err != nil {
		return nil, fmt.Errorf("could not compile embedded schema: %w", err)
	}

	return &Validator{ctx: ctx, schema: inst.Value()}, nil
}

// Validate checks a decoded YAML document against #RuleSet
func (v *Validator) Validate(data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}

	dataValue := v.ctx.Encode(data)
	if err := dataValue.Err(); err != nil {
		return fmt.Errorf("%w: error encoding data: %v", ErrInvalidRuleSet, err)
	}

	def := v.schema.LookupPath(cue.ParsePath("#RuleSet"))
	if !def.Exists() {
		return fmt.Errorf("schema has no #RuleSet definition")
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}

	return nil
}

// Parse validates content and builds a table from it. Sections the file
// leaves out keep their built-in values.
func Parse(content []byte) (*scoring.Table, error) {
	var raw map[string]any
	if err := yamlv3.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%w: error parsing YAML: %v", ErrInvalidRuleSet, err)
	}

	v, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Validate(raw); err != nil {
		return nil, err
	}

	var f File
	if err := yamlv3.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("%w: error decoding rule set: %v", ErrInvalidRuleSet, err)
	}

	table, err := scoring.NewTable(f.spec())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}
	return table, nil
}

// Load reads and parses a rule-set file
func Load(path string) (*scoring.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set: %w", err)
	}

	table, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Export renders a table in the rule-set file format
func Export(t *scoring.Table) ([]byte, error) {
	f := File{
		Defaults:    map[string]int{},
		Cap:         t.Cap(),
		Multipliers: map[string]map[string]float64{},
	}
	for _, r := range t.Rules(scoring.CategoryUnknown) {
		f.Rules = append(f.Rules, RuleSpec{
			Category:    r.Category.String(),
			Description: r.Description,
			Points:      r.Points,
			Keywords:    r.Keywords,
		})
	}
	for _, c := range scoring.Categories() {
		f.Defaults[c.String()] = t.DefaultPoints(c)
	}
	for _, role := range scoring.Roles() {
		row := map[string]float64{}
		for _, c := range scoring.Categories() {
			row[c.String()] = t.RoleMultiplier(role, c)
		}
		f.Multipliers[role.String()] = row
	}

	out, err := yamlv3.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("error marshaling rule set: %w", err)
	}
	return out, nil
}

func (f File) spec() scoring.TableSpec {
	spec := scoring.TableSpec{Cap: f.Cap}

	for _, r := range f.Rules {
		spec.Rules = append(spec.Rules, scoring.ScoringRule{
			Category:    scoring.ParseCategory(r.Category),
			Description: r.Description,
			Points:      r.Points,
			Keywords:    r.Keywords,
		})
	}

	if len(f.Defaults) > 0 {
		spec.Defaults = make(map[scoring.Category]int, len(f.Defaults))
		for name, points := range f.Defaults {
			spec.Defaults[scoring.ParseCategory(name)] = points
		}
	}

	if len(f.Multipliers) > 0 {
		spec.Multipliers = make(map[scoring.Role]map[scoring.Category]float64, len(f.Multipliers))
		for roleName, row := range f.Multipliers {
			role := scoring.ParseRole(roleName)
			m := make(map[scoring.Category]float64, len(row))
			for name, v := range row {
				m[scoring.ParseCategory(name)] = v
			}
			spec.Multipliers[role] = m
		}
	}

	return spec
}
