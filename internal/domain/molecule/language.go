package molecule

import "github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"

// Language selects the display language of names and messages.
type Language string

const (
	Japanese Language = "ja"
	English  Language = "en"
)

// ParseLanguage accepts "ja" or "en".  Empty means Japanese.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case "", Japanese:
		return Japanese, nil
	case English:
		return English, nil
	}
	return "", errors.New(errors.ErrCodeValidation, "unsupported language; expected ja or en").WithDetail(s)
}

// Pick returns ja or en according to l.
func (l Language) Pick(ja, en string) string {
	if l == English {
		return en
	}
	return ja
}
