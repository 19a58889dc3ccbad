package download

import "strings"

// classificationRule maps raw engine error text to a user-facing message.
// Substrings are matched verbatim unless lowercase is set, in which case the
// lowercased error text is searched. A rule fires if any substring matches.
type classificationRule struct {
	substrings []string
	lowercase  bool
	message    string
}

// classificationRules is evaluated in order; the first matching rule wins.
// Unmatched errors pass through verbatim.
var classificationRules = []classificationRule{
	{
		substrings: []string{"HTTP Error 429"},
		message:    "YouTube is rate limiting requests. Please try again later.",
	},
	{
		substrings: []string{"HTTP Error 403"},
		message:    "This video cannot be accessed. It may be region-locked or require signing in.",
	},
	{
		substrings: []string{"HTTP Error 404"},
		message:    "The video does not exist or has been deleted.",
	},
	{
		substrings: []string{"Unable to download API page", "WinError 10060"},
		message:    "Network connection timed out. Check your connection, try a proxy server, or retry later.",
	},
	{
		substrings: []string{"timed out"},
		lowercase:  true,
		message:    "Network connection timed out. Check your connection, try a proxy server, or retry later.",
	},
	{
		substrings: []string{"This video is unavailable"},
		message:    "This video is unavailable. It may have been made private or deleted.",
	},
	{
		substrings: []string{"Video unavailable"},
		message:    "The video is unavailable. It may have been deleted or made private by the uploader.",
	},
	{
		substrings: []string{"Sign in"},
		message:    "This video requires signing in to watch.",
	},
	{
		substrings: []string{"The uploader has not made this video available"},
		message:    "The uploader has not made this video available in your country.",
	},
	{
		substrings: []string{"socket", "network"},
		lowercase:  true,
		message:    "Network connection is unstable. Check your connection, try a proxy server, or retry later.",
	},
	{
		substrings: []string{"DNS"},
		message:    "DNS resolution failed. Check your DNS settings, try another DNS server, or use a proxy.",
	},
}

// ClassifyError maps raw engine error text to a user-facing message using
// the ordered rule table. Errors no rule matches are returned verbatim.
func ClassifyError(raw string) string {
	lower := strings.ToLower(raw)
	for _, rule := range classificationRules {
		haystack := raw
		if rule.lowercase {
			haystack = lower
		}
		for _, sub := range rule.substrings {
			if strings.Contains(haystack, sub) {
				return rule.message
			}
		}
	}
	return raw
}
