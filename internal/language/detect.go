// Package language holds the script/diacritic heuristics used to guess the
// language of a chat message. This is a heuristic, not a classifier: false
// positives on loanwords and shared diacritics are accepted behavior.
package language

import "regexp"

// Default is returned when no rule matches.
const Default = "en"

type rule struct {
	tag     string
	pattern *regexp.Regexp
}

// The rule order is a compatibility contract: several scripts and diacritics
// overlap, and first-match-wins changes results. Do not reorder.
var rules = []rule{
	{"es", regexp.MustCompile(`[ñÑ¿¡áéíóúüÁÉÍÓÚÜ]`)},
	{"fr", regexp.MustCompile(`[àâçèêëîïôùûÿœÀÂÇÈÊËÎÏÔÙÛŸŒ]`)},
	{"de", regexp.MustCompile(`[äöüßÄÖÜ]`)},
	{"it", regexp.MustCompile(`[àèéìíîòóùÀÈÉÌÍÎÒÓÙ]`)},
	{"pt", regexp.MustCompile(`[ãõçâêôÃÕÇÂÊÔ]`)},
	{"ru", regexp.MustCompile(`[\x{0400}-\x{04FF}]`)},
	{"zh", regexp.MustCompile(`[\x{4E00}-\x{9FFF}]`)},
	{"ja", regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}]`)},
	{"ko", regexp.MustCompile(`[\x{AC00}-\x{D7AF}\x{1100}-\x{11FF}]`)},
	{"ar", regexp.MustCompile(`[\x{0600}-\x{06FF}]`)},
	{"hi", regexp.MustCompile(`[\x{0900}-\x{097F}]`)},
}

// Detect returns the tag of the first rule matching any character of text,
// or Default when nothing matches.
func Detect(text string) string {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.tag
		}
	}
	return Default
}
