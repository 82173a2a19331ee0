package risk_test

import (
	"reflect"
	"strings"
	"testing"

	"phishguard-service/internal/domain"
	"phishguard-service/internal/risk"
)

func TestCleanURLScoresFull(t *testing.T) {
	for _, url := range []string{
		"",
		"https://www.google.com",
		"https://github.com",
		"https://example.com/docs/getting-started",
	} {
		v := risk.Evaluate(url)
		if v.Score != 100 || v.Verdict != domain.VerdictSafe {
			t.Fatalf("%q: expected 100/safe, got %d/%s (%v)", url, v.Score, v.Verdict, v.Findings)
		}
		if len(v.Findings) != 0 {
			t.Fatalf("%q: expected no findings, got %v", url, v.Findings)
		}
	}
}

func TestRuleBattery(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		score   int
		verdict domain.Verdict
	}{
		{"insecure transport only", "http://example.com", 85, domain.VerdictSafe},
		{"raw ip host with keyword", "http://192.168.1.100/banking", 45, domain.VerdictDangerous},
		{"look-alike brand", "https://paypa1-secure.com/login", 55, domain.VerdictSuspicious},
		{"digit run", "https://example123456.com", 70, domain.VerdictSuspicious},
		{"suspicious tld plus keywords", "https://secure-verify-account-amazon.tk", 60, domain.VerdictSuspicious},
		{"deep subdomains", "https://a.b.c.d.example.com", 80, domain.VerdictSafe},
		{"keyword stuffing", "https://example.com/login?next=account", 85, domain.VerdictSafe},
		{"shortener", "https://bit.ly/3xYz", 90, domain.VerdictSafe},
		{"at trick", "https://example.com@evil.test", 65, domain.VerdictSuspicious},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := risk.Evaluate(tt.url)
			if v.Score != tt.score {
				t.Fatalf("score: expected %d, got %d (%v)", tt.score, v.Score, v.Findings)
			}
			if v.Verdict != tt.verdict {
				t.Fatalf("verdict: expected %s, got %s", tt.verdict, v.Verdict)
			}
		})
	}
}

func TestPenaltiesAccumulateAndClamp(t *testing.T) {
	// http + look-alike + digit run + tld + subdomain depth + keywords + @.
	url := "http://user@secure.login.verify.account.paypa1234.tk/confirm"
	v := risk.Evaluate(url)
	if v.Score != 0 {
		t.Fatalf("expected clamped score 0, got %d (%v)", v.Score, v.Findings)
	}
	if v.Verdict != domain.VerdictDangerous {
		t.Fatalf("expected dangerous, got %s", v.Verdict)
	}
	if len(v.Findings) < 6 {
		t.Fatalf("expected at least 6 findings, got %d", len(v.Findings))
	}
}

func TestAtSymbolPenalty(t *testing.T) {
	with := risk.Evaluate("https://example.com/path@payload")
	without := risk.Evaluate("https://example.com/pathpayload")
	if without.Score-with.Score < 35 {
		t.Fatalf("expected @ to cost at least 35 points, got delta %d", without.Score-with.Score)
	}
}

func TestIPHostNotDoubleCountedAsDigitRun(t *testing.T) {
	v := risk.Evaluate("http://192.168.1.100/banking")
	for _, f := range v.Findings {
		if strings.Contains(f.Message, "number sequences") {
			t.Fatalf("digit-run rule fired on an IP-literal host: %v", v.Findings)
		}
	}
	if v.Score != 45 {
		t.Fatalf("expected score 45, got %d", v.Score)
	}
}

func TestDeterministic(t *testing.T) {
	url := "http://secure-login.paypa1.tk/verify?account=1"
	first := risk.Evaluate(url)
	second := risk.Evaluate(url)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical verdicts, got %+v vs %+v", first, second)
	}
}

func TestScoreAlwaysInRange(t *testing.T) {
	inputs := []string{
		"",
		"not a url at all",
		"://///",
		"ftp://@@@@",
		"http://000.000.000.000@000.000.000.000/verify/account/secure/login",
		strings.Repeat("9", 500),
		"https://" + strings.Repeat("a.", 50) + "tk",
	}
	for _, url := range inputs {
		v := risk.Evaluate(url)
		if v.Score < 0 || v.Score > 100 {
			t.Fatalf("%q: score %d out of range", url, v.Score)
		}
	}
}

func TestFindingsKeepRuleOrder(t *testing.T) {
	v := risk.Evaluate("http://bit.ly/verify-account@x")
	if len(v.Findings) != 4 {
		t.Fatalf("expected 4 findings, got %v", v.Findings)
	}
	wantWeights := []int{-15, -15, -10, -35}
	for i, f := range v.Findings {
		if f.Weight != wantWeights[i] {
			t.Fatalf("finding %d: expected weight %d, got %d", i, wantWeights[i], f.Weight)
		}
	}
}
