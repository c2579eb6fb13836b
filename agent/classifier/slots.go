package classifier

import (
	"regexp"
	"strconv"
	"strings"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

var (
	emailPattern      = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.\w+`)
	anchoredIDPattern = regexp.MustCompile(`(?:id|customer)\s*#?\s*(\d+)`)
	bareIDPattern     = regexp.MustCompile(`\b(\d+)\b`)
	priorityPattern   = regexp.MustCompile(`(low|medium|high)[\s-]+priority|priority\s*[:=]?\s*(low|medium|high)`)
)

var highUrgencyKeywords = []string{
	"urgent", "immediately", "critical", "emergency", "down",
	"charged twice", "refund", "security", "breach",
}

var mediumUrgencyKeywords = []string{
	"issue", "problem", "not working", "broken", "help",
}

// extractSlots pulls the customer id, email address, stated priority
// and urgency out of the query, independent of surrounding wording and
// case. The caller context supplies the customer id only when the query
// itself carries none.
func extractSlots(query string, caller contractx.CallerContext) contractx.Slots {
	lowered := strings.ToLower(query)

	slots := contractx.Slots{
		Email:    extractEmail(query),
		Priority: extractPriority(lowered),
		Urgency:  AssessUrgency(query),
	}

	if id, ok := extractCustomerID(lowered, slots.Email); ok {
		slots.CustomerID = &id
	} else if caller.CustomerID != nil {
		id := *caller.CustomerID
		slots.CustomerID = &id
	}

	return slots
}

func extractEmail(query string) string {
	return emailPattern.FindString(query)
}

// extractCustomerID prefers an id/customer-anchored number and falls
// back to the first standalone integer that is not part of an email
// address.
func extractCustomerID(lowered, email string) (int64, bool) {
	if m := anchoredIDPattern.FindStringSubmatch(lowered); m != nil {
		return parseID(m[1])
	}

	stripped := lowered
	if email != "" {
		stripped = strings.ReplaceAll(stripped, strings.ToLower(email), " ")
	}
	if m := bareIDPattern.FindStringSubmatch(stripped); m != nil {
		return parseID(m[1])
	}
	return 0, false
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func extractPriority(lowered string) storex.Priority {
	m := priorityPattern.FindStringSubmatch(lowered)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			return storex.Priority(group)
		}
	}
	return ""
}

// AssessUrgency ranks a query by its urgency keywords. Exported so the
// support agent can re-assess free text the same way the classifier
// does.
func AssessUrgency(query string) contractx.Urgency {
	lowered := strings.ToLower(query)
	for _, kw := range highUrgencyKeywords {
		if strings.Contains(lowered, kw) {
			return contractx.UrgencyHigh
		}
	}
	for _, kw := range mediumUrgencyKeywords {
		if strings.Contains(lowered, kw) {
			return contractx.UrgencyMedium
		}
	}
	return contractx.UrgencyLow
}
