// Package risk scores URLs against a battery of lexical phishing heuristics.
// Evaluation is purely textual: no DNS, no reputation lookups, no network.
package risk

import (
	"fmt"
	"regexp"
	"strings"

	"phishguard-service/internal/domain"
)

var (
	ipv4HostRe       = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)
	lookAlikeRe      = regexp.MustCompile(`(?i)paypa1|g00gle|faceb00k|amaz0n|micr0soft`)
	digitRunRe       = regexp.MustCompile(`\d{3,}`)
	suspiciousTLDs   = []string{".tk", ".ml", ".ga", ".cf", ".gq", ".xyz"}
	phishingKeywords = []string{"verify", "account", "secure", "update", "confirm", "login", "banking"}
	shortenerHosts   = []string{"bit.ly", "tinyurl.com", "goo.gl", "t.co", "ow.ly"}
)

// Verdict thresholds on the clamped [0,100] score.
const (
	safeThreshold       = 80
	suspiciousThreshold = 50
)

// Evaluate runs every heuristic against the literal URL string and returns
// the itemized findings with the resulting verdict. It is total and
// deterministic: any input, including malformed or empty URLs, produces a
// verdict and never an error. Rules are independent; their penalties
// accumulate and the score is clamped at the end.
func Evaluate(url string) domain.RiskVerdict {
	verdict := domain.RiskVerdict{InputURL: url, Findings: []domain.RiskFinding{}}
	lower := strings.ToLower(url)
	host := hostOf(url)

	add := func(severity domain.Severity, weight int, message string) {
		verdict.Findings = append(verdict.Findings, domain.RiskFinding{
			Severity: severity,
			Message:  message,
			Weight:   weight,
		})
	}

	if strings.HasPrefix(lower, "http://") {
		add(domain.SeverityWarning, -15, "Not using HTTPS - data is not encrypted")
	}

	ipHost := ipv4HostRe.MatchString(host)
	if ipHost {
		add(domain.SeverityHigh, -40, "Uses IP address instead of domain name - highly suspicious")
	}

	if lookAlikeRe.MatchString(host) {
		add(domain.SeverityHigh, -30, "Character substitution in brand name (0 for O, 1 for l)")
	}

	// An IP-literal host already paid the full address penalty; scanning its
	// octets again as a digit run would double-count the same signal.
	if !ipHost && digitRunRe.MatchString(url) {
		add(domain.SeverityHigh, -30, "Contains long number sequences")
	}

	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			add(domain.SeverityMedium, -25, "Uses a suspicious top-level domain often associated with phishing")
			break
		}
	}

	if host != "" && len(strings.Split(host, ".")) > 4 {
		add(domain.SeverityMedium, -20, "Excessive subdomains - may be trying to hide the real domain")
	}

	if found := matchedKeywords(lower); len(found) >= 2 {
		add(domain.SeverityWarning, -15, fmt.Sprintf("Contains suspicious keywords: %s", strings.Join(found, ", ")))
	}

	if isShortener(host) {
		add(domain.SeverityWarning, -10, "URL shortener detected - destination is hidden")
	}

	if strings.Contains(url, "@") {
		add(domain.SeverityHigh, -35, "@ symbol in URL - everything before @ is ignored by browsers")
	}

	score := 100
	for _, f := range verdict.Findings {
		score += f.Weight
	}
	if score < 0 {
		score = 0
	}
	verdict.Score = score

	switch {
	case score >= safeThreshold:
		verdict.Verdict = domain.VerdictSafe
	case score >= suspiciousThreshold:
		verdict.Verdict = domain.VerdictSuspicious
	default:
		verdict.Verdict = domain.VerdictDangerous
	}
	return verdict
}

// hostOf extracts the host portion of a URL-ish string without ever failing.
// Scheme and path are stripped lexically, userinfo before the last "@" is
// discarded (matching how browsers resolve the host), and any port is cut.
func hostOf(raw string) string {
	s := raw
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}

func matchedKeywords(lower string) []string {
	var found []string
	for _, kw := range phishingKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func isShortener(host string) bool {
	for _, s := range shortenerHosts {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}
