package domain

import "strings"

// UnknownDomain is the sentinel used when no domain can be attributed.
const UnknownDomain = "unknown"

// trackingPrefix is the technical prefix the warmup tool prepends to tracking
// domains (e.g. "inst.mail.biz" tracks "mail.biz").
const trackingPrefix = "inst."

// ResolveDomain derives the canonical domain for an account. Tracking-domain
// data is unreliable for a subset of accounts, so when it is missing or the
// "unknown" sentinel, the email's own domain part is used instead. Attribution
// never stays empty: with no usable email suffix the sentinel is returned.
func ResolveDomain(trackingDomain, email string) string {
	name := strings.TrimPrefix(trackingDomain, trackingPrefix)
	if name != "" && name != UnknownDomain {
		return name
	}

	if at := strings.LastIndex(email, "@"); at >= 0 && at+1 < len(email) {
		return strings.ToLower(email[at+1:])
	}

	return UnknownDomain
}
