package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
)

type entry struct {
	code2    string   // ISO 639-1 (2-letter)
	code3    string   // ISO 639-2 primary (3-letter)
	alt3     string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display  string   // Human-readable name
	words    []string // Full word forms (e.g. "english")
	snowball string   // Snowball stemmer language, empty when unsupported
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}, "english"},
	{"es", "spa", "", "Spanish", []string{"spanish"}, "spanish"},
	{"fr", "fra", "fre", "French", []string{"french"}, "french"},
	{"de", "deu", "ger", "German", []string{"german"}, ""},
	{"it", "ita", "", "Italian", []string{"italian"}, ""},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}, ""},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}, ""},
	{"ko", "kor", "", "Korean", []string{"korean"}, ""},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}, ""},
	{"ru", "rus", "", "Russian", []string{"russian"}, "russian"},
	{"hu", "hun", "", "Hungarian", []string{"hungarian"}, "hungarian"},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}, ""},
	{"sv", "swe", "", "Swedish", []string{"swedish"}, "swedish"},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}, "norwegian"},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	if base := baseOfTag(code); base != "" {
		if e, ok := byCode2[base]; ok {
			return e
		}
	}
	return nil
}

// baseOfTag extracts the base language from a BCP 47 tag such as "en-US".
func baseOfTag(code string) string {
	if !strings.ContainsAny(code, "-_") {
		return ""
	}
	tag, err := xlanguage.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == xlanguage.No {
		return ""
	}
	return base.String()
}

// ToISO2 converts any recognized language code, word, or tag to ISO 639-1.
// Returns empty string for unrecognized input.
// If the input is already a 2-letter code (even if unknown), it passes through.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// SnowballName returns the snowball stemmer language for code, or "" when
// no snowball stemmer exists for it.
func SnowballName(code string) string {
	if e := lookup(code); e != nil {
		return e.snowball
	}
	return ""
}
