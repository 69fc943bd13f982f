package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// FileStem turns a channel name into the stem used for every file written
// for that channel: whitespace runs become underscores ("Jeremy Howard" ->
// "Jeremy_Howard"). Returns "unknown" for blank input.
func FileStem(name string) string {
	stem := SanitizeFileName(strings.Join(strings.Fields(name), "_"))
	if stem == "" {
		return "unknown"
	}
	return stem
}
