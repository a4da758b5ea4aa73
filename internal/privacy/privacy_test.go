package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrubMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:        "sqlite path",
			input:       "unable to open database file: /home/alice/venom/knowledge-base.db",
			contains:    []string{"unable to open database file: [PATH].db"},
			notContains: []string{"alice", "venom/"},
		},
		{
			name:        "mysql dsn",
			input:       "dial failed for venom:s3cret@tcp(db.internal:3306)/venomid?parseTime=true",
			contains:    []string{"dial failed for [DSN]"},
			notContains: []string{"s3cret", "db.internal"},
		},
		{
			name:        "postgres keyword dsn",
			input:       "connect host=10.0.0.5 user=venom password='p w' dbname=venomid",
			contains:    []string{"host=[REDACTED]", "user=[REDACTED]", "password=[REDACTED]", "dbname=venomid"},
			notContains: []string{"10.0.0.5", "p w"},
		},
		{
			name:        "quoted symptom text",
			input:       `validation failed for symptom "burning pain after lionfish sting"`,
			contains:    []string{`symptom "[REDACTED]"`},
			notContains: []string{"lionfish"},
		},
		{
			name:        "url",
			input:       "GET https://kb.example.org/export/42 failed",
			contains:    []string{"GET url-", " failed"},
			notContains: []string{"example.org"},
		},
		{
			name:        "plain message",
			input:       "reference store unavailable: load_corpus",
			contains:    []string{"reference store unavailable: load_corpus"},
			notContains: []string{"[REDACTED]", "[PATH]"},
		},
		{
			name:  "empty",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ScrubMessage(tt.input)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestAnonymizeURLIsStable(t *testing.T) {
	t.Parallel()

	a := AnonymizeURL("https://kb.example.org/export/42")
	b := AnonymizeURL("https://kb.example.org/export/42")
	c := AnonymizeURL("https://kb.example.org/import/42")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^url-[0-9a-f]{24}$`, a)
}

func TestCategorizeHost(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"localhost":     "localhost",
		"127.0.0.1":     "localhost",
		"::1":           "localhost",
		"192.168.1.10":  "private-ip",
		"10.1.2.3":      "private-ip",
		"fe80::1":       "private-ip",
		"8.8.8.8":       "public-ip",
		"db.example.fi": "domain-fi",
		"mysql":         "unknown-host",
	}
	for host, want := range tests {
		assert.Equal(t, want, categorizeHost(host), host)
	}
}
