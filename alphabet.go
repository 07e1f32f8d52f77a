package letterart

import (
	"errors"

	"github.com/rivo/uniseg"
)

// DefaultLetters is the alphabet used when the caller does not supply
// one.
const DefaultLetters = "DIONELA"

// Alphabet is a non-empty ordered sequence of letters that the mapper
// cycles through. Each letter is a single extended grapheme cluster, so
// multi-codepoint characters such as emoji or combining sequences cycle
// as one unit rather than splitting into their constituent runes.
type Alphabet struct {
	letters []string
	src     string
}

// NewAlphabet splits the given string into grapheme clusters and
// returns the resulting Alphabet. An empty string is a configuration
// error: the cyclic mapping is undefined without at least one letter.
func NewAlphabet(letters string) (Alphabet, error) {
	if letters == "" {
		return Alphabet{}, errors.New("alphabet must contain at least one character")
	}
	a := Alphabet{src: letters}
	state := -1
	var cluster string
	for letters != "" {
		cluster, letters, _, state = uniseg.FirstGraphemeClusterInString(letters, state)
		a.letters = append(a.letters, cluster)
	}
	return a, nil
}

// Len returns the number of letters in the alphabet.
func (a Alphabet) Len() int {
	return len(a.letters)
}

// At returns the letter at position i, indexed modulo the alphabet
// length.
func (a Alphabet) At(i int) string {
	return a.letters[i%len(a.letters)]
}

// String returns the original string the alphabet was built from.
func (a Alphabet) String() string {
	return a.src
}
