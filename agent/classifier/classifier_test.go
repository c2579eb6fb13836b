package classifier

import (
	"fmt"
	"reflect"
	"testing"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

func TestClassifyRulePrecedence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		query string
		want  contractx.IntentKind
	}{
		{
			name:  "simple lookup phrase",
			query: "Get customer information for ID 5",
			want:  contractx.IntentSimpleLookup,
		},
		{
			name:  "escalation outranks simple lookup",
			query: "Get customer information for ID 5, this is urgent",
			want:  contractx.IntentEscalation,
		},
		{
			name:  "double charge is an escalation",
			query: "I've been charged twice, please refund immediately!",
			want:  contractx.IntentEscalation,
		},
		{
			name:  "support keywords",
			query: "I'm customer 1 and need help upgrading my account",
			want:  contractx.IntentNegotiation,
		},
		{
			name:  "analysis phrase",
			query: "Show me all active customers who have open tickets",
			want:  contractx.IntentMultiStep,
		},
		{
			name:  "two action verbs",
			query: "Update my email to newemail@test.com and show my ticket history",
			want:  contractx.IntentMultiIntent,
		},
		{
			name:  "no rule matches",
			query: "Hello there",
			want:  contractx.IntentUnknown,
		},
	}

	cls := New()
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := cls.Classify(tc.query, contractx.CallerContext{})
			if got.Kind != tc.want {
				t.Fatalf("query %q: want %s, got %s (rule=%s)", tc.query, tc.want, got.Kind, got.Rule)
			}
		})
	}
}

func TestClassifyExtractsIdentifierRegardlessOfWording(t *testing.T) {
	t.Parallel()

	queries := []string{
		"Get customer information for ID 5",
		"show customer 5 please",
		"what is the status of customer #5",
		"5 is the account I mean",
		"I need everything you have on id:5 right away",
	}

	cls := New()
	for _, q := range queries {
		got := cls.Classify(q, contractx.CallerContext{})
		if got.Slots.CustomerID == nil {
			t.Fatalf("query %q: no customer id extracted", q)
		}
		if *got.Slots.CustomerID != 5 {
			t.Fatalf("query %q: want id 5, got %d", q, *got.Slots.CustomerID)
		}
	}
}

func TestClassifySlotExtraction(t *testing.T) {
	t.Parallel()

	cls := New()
	got := cls.Classify(
		"Update my email to new.user+tag@test.com and create a low priority ticket",
		contractx.CallerContext{},
	)

	if got.Slots.Email != "new.user+tag@test.com" {
		t.Fatalf("unexpected email: %q", got.Slots.Email)
	}
	if got.Slots.Priority != storex.PriorityLow {
		t.Fatalf("unexpected priority: %q", got.Slots.Priority)
	}
}

func TestClassifyEmailDigitsAreNotAnIdentifier(t *testing.T) {
	t.Parallel()

	cls := New()
	got := cls.Classify("Update my email to user42@test.com", contractx.CallerContext{})
	if got.Slots.CustomerID != nil {
		t.Fatalf("expected no customer id, got %d", *got.Slots.CustomerID)
	}
}

func TestClassifyCallerContextFallback(t *testing.T) {
	t.Parallel()

	callerID := int64(7)
	cls := New()

	got := cls.Classify("I need help with my account", contractx.CallerContext{CustomerID: &callerID})
	if got.Slots.CustomerID == nil || *got.Slots.CustomerID != 7 {
		t.Fatalf("expected caller customer id 7, got %v", got.Slots.CustomerID)
	}

	// The query's own identifier wins over caller context.
	got = cls.Classify("I'm customer 3 and need help", contractx.CallerContext{CustomerID: &callerID})
	if got.Slots.CustomerID == nil || *got.Slots.CustomerID != 3 {
		t.Fatalf("expected query customer id 3, got %v", got.Slots.CustomerID)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	cls := New()
	queries := []string{
		"Get customer information for ID 5",
		"I've been charged twice, please refund immediately!",
		"Update my email to a@b.com and show my tickets",
		"something entirely unrelated",
	}

	for _, q := range queries {
		first := cls.Classify(q, contractx.CallerContext{})
		for i := 0; i < 3; i++ {
			again := cls.Classify(q, contractx.CallerContext{})
			if !reflect.DeepEqual(first, again) {
				t.Fatalf("query %q: classification not deterministic:\nfirst: %+v\nagain: %+v", q, first, again)
			}
		}
	}
}

func TestAssessUrgency(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query string
		want  contractx.Urgency
	}{
		{"I've been charged twice", contractx.UrgencyHigh},
		{"the whole site is down", contractx.UrgencyHigh},
		{"there is a security breach", contractx.UrgencyHigh},
		{"my export is broken", contractx.UrgencyMedium},
		{"I have a problem with my invoice", contractx.UrgencyMedium},
		{"just checking in", contractx.UrgencyLow},
	}

	for i, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			t.Parallel()
			if got := AssessUrgency(tc.query); got != tc.want {
				t.Fatalf("query %q: want %s, got %s", tc.query, tc.want, got)
			}
		})
	}
}
