package service

import "unicode"

// CountWords counts words in plain text. Runs of letters and digits count
// as one word; each Han, Hiragana, Katakana or Hangul character counts as
// one word on its own.
func CountWords(text string) int64 {
	var count int64
	inWord := false
	for _, r := range text {
		switch {
		case isCJK(r):
			count++
			inWord = false
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'':
			if !inWord {
				count++
				inWord = true
			}
		default:
			inWord = false
		}
	}
	return count
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}
