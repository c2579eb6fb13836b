// Package classifier maps a raw query plus optional caller context to
// a classified intent. Classification is an ordered table of
// (predicate, kind) rules evaluated top to bottom; the first match
// wins. Slot extraction runs independently of which rule matched.
// Identical input always produces an identical Intent.
package classifier

import (
	"strings"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
)

// Rule is one entry of the table. Match receives the lower-cased query.
type Rule struct {
	Name  string
	Kind  contractx.IntentKind
	Match func(query string) bool
}

type Classifier struct {
	rules []Rule
}

// New builds the default rule table. Escalation outranks simple lookup
// on purpose: a billing dispute that happens to name a customer id is
// still an escalation.
func New() *Classifier {
	return &Classifier{rules: defaultRules()}
}

// NewWithRules builds a classifier from an explicit table, mostly for
// tests of individual rules.
func NewWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

func defaultRules() []Rule {
	return []Rule{
		{
			Name: "escalation_keywords",
			Kind: contractx.IntentEscalation,
			Match: containsAny(
				"charged twice", "refund immediately", "urgent", "emergency",
			),
		},
		{
			Name: "simple_lookup_phrase",
			Kind: contractx.IntentSimpleLookup,
			Match: func(q string) bool {
				if !containsAny("get customer", "customer information", "show customer")(q) {
					return false
				}
				return !containsAny("help", "support", "upgrade", "issue")(q)
			},
		},
		{
			Name: "multiple_action_verbs",
			Kind: contractx.IntentMultiIntent,
			Match: func(q string) bool {
				return countActions(q) >= 2
			},
		},
		{
			Name: "analysis_phrase",
			Kind: contractx.IntentMultiStep,
			Match: containsAny(
				"all customers", "active customers", "open tickets", "high-priority tickets",
			),
		},
		{
			Name: "support_keywords",
			Kind: contractx.IntentNegotiation,
			Match: containsAny(
				"help", "support", "upgrade", "cancel", "issue",
			),
		},
	}
}

var actionVerbs = []string{"update", "show", "get", "create", "list"}

func countActions(q string) int {
	n := 0
	for _, verb := range actionVerbs {
		if strings.Contains(q, verb) {
			n++
		}
	}
	return n
}

func containsAny(phrases ...string) func(string) bool {
	return func(q string) bool {
		for _, p := range phrases {
			if strings.Contains(q, p) {
				return true
			}
		}
		return false
	}
}

// Classify evaluates the rule table. No match is not an error: the
// result is IntentUnknown and the orchestrator takes its default path.
func (c *Classifier) Classify(query string, caller contractx.CallerContext) contractx.Intent {
	lowered := strings.ToLower(strings.TrimSpace(query))
	slots := extractSlots(query, caller)

	for _, rule := range c.rules {
		if rule.Match(lowered) {
			return contractx.Intent{
				Kind:  rule.Kind,
				Rule:  rule.Name,
				Slots: slots,
			}
		}
	}

	return contractx.Intent{
		Kind:  contractx.IntentUnknown,
		Slots: slots,
	}
}
