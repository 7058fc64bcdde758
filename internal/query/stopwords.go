package query

import "strings"

// stopWords is the fixed stop word list applied when deriving keyword
// queries. Kept intentionally small; the goal is query diversity, not
// linguistic completeness.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "been": true, "but": true, "by": true,
	"for": true, "from": true, "had": true, "has": true, "have": true,
	"he": true, "her": true, "his": true, "in": true, "is": true,
	"it": true, "its": true, "of": true, "on": true, "or": true,
	"she": true, "that": true, "the": true, "their": true, "them": true,
	"there": true, "they": true, "this": true, "to": true, "was": true,
	"were": true, "which": true, "who": true, "will": true, "with": true,
	"would": true,
}

func isStopWord(token string) bool {
	return stopWords[strings.ToLower(token)]
}
