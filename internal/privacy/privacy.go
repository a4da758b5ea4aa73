// Package privacy scrubs error messages before they leave the process.
// Symptom descriptions are health data, and store errors can carry file
// paths, hostnames and DSN credentials.
package privacy

import (
	"crypto/sha256"
	"fmt"
	"net/netip"
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	urlPattern = regexp.MustCompile(`\b(?:https?|mysql|postgres(?:ql)?)://\S+`)

	// user:password@tcp(host:port)/db as written by go-sql-driver/mysql
	mysqlDSNPattern = regexp.MustCompile(`\S+:\S*@(?:tcp|unix)\([^)]*\)/\S*`)

	// keyword/value DSN fields
	dsnFieldPattern = regexp.MustCompile(`(?i)\b(password|user|host)=('[^']*'|\S+)`)

	// absolute unix paths and windows drive paths
	pathPattern = regexp.MustCompile(`(?:[A-Za-z]:\\|/)(?:[^\s/\\:'"]+[/\\])+[^\s/\\:'"]*`)

	// single or double quoted literals, which is where SQL errors and
	// validation messages echo user input
	quotedPattern = regexp.MustCompile(`'[^']*'|"[^"]*"`)
)

// ScrubMessage removes DSN credentials, quoted literals, filesystem paths
// and URLs from message. URLs become stable hashes so equal failures still
// group together.
func ScrubMessage(message string) string {
	scrubbed := urlPattern.ReplaceAllStringFunc(message, AnonymizeURL)
	scrubbed = mysqlDSNPattern.ReplaceAllString(scrubbed, "[DSN]")
	scrubbed = dsnFieldPattern.ReplaceAllString(scrubbed, "$1=[REDACTED]")
	scrubbed = quotedPattern.ReplaceAllStringFunc(scrubbed, func(q string) string {
		return q[:1] + "[REDACTED]" + q[:1]
	})
	return pathPattern.ReplaceAllStringFunc(scrubbed, anonymizeFilePath)
}

// AnonymizeURL replaces rawURL with a hash of its scheme, host category,
// port and path shape.
func AnonymizeURL(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		hash := sha256.Sum256([]byte(rawURL))
		return fmt.Sprintf("url-hash-%x", hash[:8])
	}

	var normalizedParts []string
	if parsedURL.Scheme != "" {
		normalizedParts = append(normalizedParts, parsedURL.Scheme)
	}
	if host := parsedURL.Hostname(); host != "" {
		normalizedParts = append(normalizedParts, categorizeHost(host))
	}
	if parsedURL.Port() != "" {
		normalizedParts = append(normalizedParts, "port-"+parsedURL.Port())
	}
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		normalizedParts = append(normalizedParts, anonymizePath(parsedURL.Path))
	}

	hash := sha256.Sum256([]byte(strings.Join(normalizedParts, ":")))
	return fmt.Sprintf("url-%x", hash[:12])
}

// categorizeHost keeps only the kind of host: localhost, private or public
// IP, or the TLD of a domain name.
func categorizeHost(host string) string {
	if host == "localhost" {
		return "localhost"
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		switch {
		case addr.IsLoopback():
			return "localhost"
		case addr.IsPrivate(), addr.IsLinkLocalUnicast():
			return "private-ip"
		default:
			return "public-ip"
		}
	}

	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		return "domain-" + parts[len(parts)-1]
	}
	return "unknown-host"
}

// anonymizePath hashes each path segment, preserving depth.
func anonymizePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "root"
	}

	segments := strings.Split(p, "/")
	anonymized := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		if isNumeric(segment) {
			anonymized = append(anonymized, "numeric")
			continue
		}
		hash := sha256.Sum256([]byte(segment))
		anonymized = append(anonymized, fmt.Sprintf("seg-%x", hash[:4]))
	}
	return strings.Join(anonymized, "/")
}

// anonymizeFilePath drops the directories of a local path but keeps the
// file extension, which is usually what tells a .db from a .yaml failure.
func anonymizeFilePath(p string) string {
	ext := path.Ext(strings.ReplaceAll(p, `\`, "/"))
	if ext == "" || len(ext) > 6 {
		return "[PATH]"
	}
	return "[PATH]" + ext
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
