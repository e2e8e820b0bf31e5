package tokenizer

import "strings"

// lineBreaks rewrites every line-break variant to LineBreak.
// Arguments are matched in order, so "\r\n" wins over a lone "\r".
var lineBreaks = strings.NewReplacer(
	"\r\n", LineBreak,
	"\r", LineBreak,
	"\n", LineBreak,
)

// Normalize canonicalizes "\r\n", "\r" and "\n" to "\r\n" so the
// tokenizer can test a fixed two-character window for line breaks.
func Normalize(text string) string {
	if !strings.ContainsAny(text, "\r\n") {
		return text
	}
	return lineBreaks.Replace(text)
}
