package domain

import "fmt"

// Rule is the viability band for one collateral kind.
type Rule struct {
	MinYear   int
	MinAmount float64
	MaxAmount float64
}

// RuleSet maps collateral kind to its rule. Kinds without an entry are never
// viable: the evaluator is a strict allowlist, not a permissive default.
type RuleSet map[string]Rule

// Verdict is the eligibility evaluator's output.
type Verdict struct {
	Viable bool
	Reason string
}

// Evaluate maps (kind, year, amount) to a viability verdict in a single pure
// pass. An unknown kind is not viable.
func Evaluate(rules RuleSet, kind string, year int, amount float64) Verdict {
	rule, ok := rules[kind]
	if !ok {
		return Verdict{Viable: false, Reason: fmt.Sprintf("no configured rule for %q", kind)}
	}

	if year < rule.MinYear {
		return Verdict{
			Viable: false,
			Reason: fmt.Sprintf("year %d below minimum %d for %s", year, rule.MinYear, kind),
		}
	}
	if amount < rule.MinAmount {
		return Verdict{
			Viable: false,
			Reason: fmt.Sprintf("amount %.2f below minimum %.2f for %s", amount, rule.MinAmount, kind),
		}
	}
	if amount > rule.MaxAmount {
		return Verdict{
			Viable: false,
			Reason: fmt.Sprintf("amount %.2f above maximum %.2f for %s", amount, rule.MaxAmount, kind),
		}
	}

	return Verdict{Viable: true}
}
