package chatfilter

import (
	"regexp"
	"strings"
)

// Tier is the sender's subscription standing. Privileged senders bypass
// every rule; standard senders are subject to all of them.
type Tier string

const (
	TierStandard   Tier = "standard"
	TierPrivileged Tier = "privileged"
)

// Category names the rule group that blocked a message.
type Category string

const (
	CategoryPhone   Category = "phone"
	CategoryWebsite Category = "website"
	CategorySocial  Category = "social"
	CategoryEmail   Category = "email"
	CategoryOffsite Category = "offsite"
)

// Verdict is the result of filtering one message. Reason is non-empty
// exactly when Blocked is true.
type Verdict struct {
	Blocked  bool     `json:"blocked"`
	Category Category `json:"category,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// rule is one ordered category: a pattern list, whether it matches against
// the lower-cased message or the raw one, and the user-facing reason.
type rule struct {
	category Category
	patterns []*regexp.Regexp
	lowered  bool
	reason   string
}

// Rule order is load-bearing: the first matching category determines the
// reported reason, so a message with both a phone number and a URL always
// reports the phone reason. Do not reorder without product sign-off.
var rules = []rule{
	{
		category: CategoryPhone,
		patterns: compile(
			`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`, // 123-456-7890 and friends
			`\b\d{10,}\b`,
			`\(\d{3}\)\s?\d{3}[-.\s]?\d{4}`, // (123) 456-7890
			`\+\d{1,3}[-.\s]?\d{3,}`,        // +1-234..., +44 20...
			`\b\d{3}[-.\s]?\d{4}\b`,         // 123-4567
			`\b\d{7,15}\b`,                  // bare digit runs
			`\b\d{3}\s?\d{3}\s?\d{4}\b`,
			`(?i)phone\s*:?\s*\d+`,
			`(?i)number\s*:?\s*\d+`,
			`(?i)call\s+me\s+at\s+\d+`,
		),
		reason: "Phone numbers are not allowed for Free users. Upgrade to Pro to share contact details.",
	},
	{
		category: CategoryWebsite,
		patterns: compile(
			`https?://[^\s]+`,
			`www\.[^\s]+`,
			// The (^|[^@\w]) guard keeps mail domains out of this category so
			// addresses fall through to the email rule.
			`(?i)(^|[^@\w])[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.com\b`,
			`(?i)(^|[^@\w])[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.(net|org|edu|gov|co\.uk|io|app|dev)\b`,
		),
		reason: "Website links are not allowed for Free users. Upgrade to Pro to share links.",
	},
	{
		category: CategorySocial,
		lowered:  true,
		patterns: compile(
			`\b(instagram|insta|ig)\b`,
			`\b(facebook|fb)\b`,
			`\b(twitter|x\.com)\b`,
			`\b(whatsapp|whats app)\b`,
			`\b(telegram|tg)\b`,
			`\b(snapchat|snap)\b`,
			`\b(tiktok|tik tok)\b`,
			`\b(linkedin|linked in)\b`,
			`\b(youtube|yt)\b`,
			`\b(discord)\b`,
			`give me your (number|phone|contact|instagram|insta|ig|facebook|fb|whatsapp|snap|snapchat)`,
			`what('s| is) your (number|phone|contact|instagram|insta|ig|facebook|fb|whatsapp|snap|snapchat)`,
			`can (i|you) (have|get) your (number|phone|contact|instagram|insta|ig|facebook|fb)`,
			`do you have (instagram|insta|ig|facebook|fb|whatsapp|snap|snapchat)`,
			`my (instagram|insta|ig|facebook|fb|whatsapp|snap|snapchat) is`,
			`follow me on`,
			`add me on`,
			`dm me`,
			`message me (on|at)`,
			`\bwebsite\b`,
			`\bname handle\b`,
			`handle\s*[:@]`,
			`my\s+handle\s+is`,
			`phone\s*number`,
		),
		reason: "Contact details are not allowed for Free users. Upgrade to Pro for unlimited messaging access.",
	},
	{
		category: CategoryEmail,
		patterns: compile(
			`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
			`\b[A-Za-z0-9._%+-]+\s*@\s*[A-Za-z0-9.-]+\s*\.\s*[A-Za-z]{2,}\b`, // spaced-out emails
		),
		reason: "Email addresses are not allowed for Free users. Upgrade to Pro to share contact details.",
	},
	{
		category: CategoryOffsite,
		lowered:  true,
		patterns: compile(
			`contact me (outside|off) (the )?(platform|app|site)`,
			`let('s| us) (talk|chat|meet) (outside|off) (the )?(platform|app|site)`,
			`reach (out to )?me (at|on)`,
			`my (website|site|page) is`,
			`check out my (website|site|page|profile)`,
			`@[a-zA-Z0-9._]+`, // bare handles
		),
		reason: "External contact sharing is restricted for Free users. Upgrade to Pro for full messaging access.",
	},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Filter classifies an outbound chat message. It is a pure function: any
// input string (including empty) yields a verdict and never an error.
func Filter(message string, tier Tier) Verdict {
	if tier == TierPrivileged {
		return Verdict{}
	}

	lowered := strings.ToLower(strings.TrimSpace(message))

	for _, r := range rules {
		subject := message
		if r.lowered {
			subject = lowered
		}
		for _, p := range r.patterns {
			if p.MatchString(subject) {
				return Verdict{Blocked: true, Category: r.category, Reason: r.reason}
			}
		}
	}

	return Verdict{}
}
