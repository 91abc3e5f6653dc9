package ingest

import (
	"strings"

	"github.com/actuallystonmai/game-recommender/internal/domain"
)

// ContentClassifier maps free-text mature-content descriptions onto the
// normalized content categories. The keyword sets are fixed configuration
// owned by the pipeline, not package-level state.
type ContentClassifier struct {
	violence  domain.StringSet
	addiction domain.StringSet
	horror    domain.StringSet
	sex       domain.StringSet
	general   domain.StringSet
}

func NewContentClassifier() *ContentClassifier {
	return &ContentClassifier{
		violence: domain.NewStringSet(
			"violence", "violent", "gore", "blood", "bloody", "war", "kill", "killed",
			"killing", "die", "death", "dead", "murder", "murders", "shoot", "shooting",
			"shooter", "guns", "weapons", "sword", "suicide", "fighting", "aggressive",
			"bomb", "battle", "attack", "destruction", "destroy", "assault", "damage",
		),
		addiction: domain.NewStringSet(
			"drugs", "drug", "alcohol", "beer", "wine", "drink", "tobacco", "gambling",
		),
		horror: domain.NewStringSet(
			"horror", "scary", "shock", "shocking", "jumpscare", "scares",
		),
		sex: domain.NewStringSet(
			"sex", "sexual", "sexually", "sexy", "nude", "nudity", "naked", "underwear",
			"bananas", "suggestive", "bikini", "swimsuit", "bath", "sperm", "unbuttoned",
			"clothes", "erotic", "girls", "boobs", "condoms", "topless", "anime",
		),
		general: domain.NewStringSet(
			"general", "cursing", "language", "profanity", "swearing", "ages", "trauma",
			"mature", "adult", "sensitive", "disturbing", "uncomfortable", "depression",
		),
	}
}

// The source format spends its first tokens on boilerplate ("This Game may
// contain content not appropriate for all ages, ..."), so classification
// starts at a fixed token offset.
const matureContentTokenOffset = 10

// Classify tokenizes a mature-content description and returns the matched
// content categories. A description matching no keyword set yields {other}.
func (c *ContentClassifier) Classify(description string) domain.StringSet {
	flags := domain.NewStringSet()
	tokens := strings.Fields(description)
	for i := matureContentTokenOffset; i < len(tokens); i++ {
		word := strings.Trim(strings.ToLower(tokens[i]), "-,;.!\"'")
		switch {
		case c.violence.Has(word):
			flags.Add(domain.ContentViolence)
		case c.addiction.Has(word):
			flags.Add(domain.ContentAddiction)
		case c.horror.Has(word):
			flags.Add(domain.ContentHorror)
		case c.sex.Has(word):
			flags.Add(domain.ContentSex)
		case c.general.Has(word):
			flags.Add(domain.ContentGeneral)
		}
	}
	if flags.Len() == 0 {
		flags.Add(domain.ContentOther)
	}
	return flags
}
