package mozdoc

//go:generate go tool go-enum --marshal --names

// Kind of document condition in @-moz-document header.
// ENUM(domain, url, url-prefix, regexp)
type RuleType int

// Kind of fatal splitting failure.
// ENUM(malformed-header, unmatched-brace)
type ErrorKind int
