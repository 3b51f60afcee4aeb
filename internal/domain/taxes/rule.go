package taxes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"

	"salesinvoice/internal/core/apperror"
	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/product"
	"salesinvoice/internal/domain/invoicing"
)

// Rule selects a rate when its CEL condition holds.
//
// Conditions see two variables: classification (string) and net (double).
// net is only suitable for comparisons; the tax itself is computed in decimal.
type Rule struct {
	Name        string          `json:"name"`
	Condition   string          `json:"condition"`
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description"`
}

type compiledRule struct {
	Rule
	program cel.Program
}

// RulePolicy evaluates rules in order and applies the first match.
type RulePolicy struct {
	rules []compiledRule
}

// NewRulePolicy compiles rules. Conditions must be boolean expressions.
func NewRulePolicy(rules []Rule) (*RulePolicy, error) {
	env, err := cel.NewEnv(
		cel.Variable("classification", cel.StringType),
		cel.Variable("net", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel env: %w", err)
	}

	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		ast, iss := env.Compile(r.Condition)
		if iss != nil && iss.Err() != nil {
			return nil, apperror.NewValidation("invalid tax rule condition").
				WithDetail("rule", r.Name).
				WithDetail("index", i).
				WithCause(iss.Err())
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, apperror.NewValidation("tax rule condition must be boolean").
				WithDetail("rule", r.Name).
				WithDetail("index", i)
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("program rule %q: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, program: prg})
	}

	return &RulePolicy{rules: compiled}, nil
}

// LoadRules decodes a JSON array of rules.
func LoadRules(r io.Reader) ([]Rule, error) {
	var rules []Rule
	if err := json.NewDecoder(r).Decode(&rules); err != nil {
		return nil, fmt.Errorf("decode tax rules: %w", err)
	}
	return rules, nil
}

// DefaultRules mirrors DefaultRates as rule conditions.
func DefaultRules() []Rule {
	rules := make([]Rule, 0, 3)
	for _, r := range DefaultRates() {
		rules = append(rules, Rule{
			Name:        string(r.Classification),
			Condition:   fmt.Sprintf("classification == %q", string(r.Classification)),
			Rate:        r.Rate,
			Description: r.Description,
		})
	}
	return rules
}

// CalculateTax implements invoicing.TaxPolicy.
func (p *RulePolicy) CalculateTax(ctx context.Context, t product.Type, net types.Money) (invoicing.Tax, error) {
	if err := checkNet(t, net); err != nil {
		return invoicing.Tax{}, err
	}

	vars := map[string]any{
		"classification": string(t),
		"net":            net.Float64(),
	}
	for _, r := range p.rules {
		out, _, err := r.program.ContextEval(ctx, vars)
		if err != nil {
			return invoicing.Tax{}, apperror.NewPolicyFailure(fmt.Errorf("evaluate rule %q: %w", r.Name, err)).
				WithDetail("rule", r.Name)
		}
		if matched, ok := out.Value().(bool); ok && matched {
			return Rate{Rate: r.Rate, Description: r.Description}.Apply(net), nil
		}
	}

	return invoicing.Tax{}, apperror.NewUnsupportedClassification(string(t))
}

var _ invoicing.TaxPolicy = (*RulePolicy)(nil)
