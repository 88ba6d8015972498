package wallet

import (
	"fmt"
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// WordListSize is the number of words in a BIP-39 word list.
const WordListSize = 2048

// WordList maps 11-bit indices to words and back.
type WordList struct {
	words []string

	once  sync.Once
	index map[string]int
}

// English is the standard BIP-39 English word list.
var English = mustWordList(wordlists.English)

// NewWordList wraps a 2048-entry word list. The slice is copied.
func NewWordList(words []string) (*WordList, error) {
	if len(words) != WordListSize {
		return nil, fmt.Errorf("word list must have %d entries, got %d", WordListSize, len(words))
	}
	return &WordList{words: append([]string(nil), words...)}, nil
}

func mustWordList(words []string) *WordList {
	wl, err := NewWordList(words)
	if err != nil {
		panic(err)
	}
	return wl
}

// Word returns the word at index i.
func (wl *WordList) Word(i int) (string, bool) {
	if i < 0 || i >= len(wl.words) {
		return "", false
	}
	return wl.words[i], true
}

// Index returns the position of word in the list.
func (wl *WordList) Index(word string) (int, bool) {
	wl.once.Do(func() {
		wl.index = make(map[string]int, len(wl.words))
		for i, w := range wl.words {
			wl.index[w] = i
		}
	})
	i, ok := wl.index[word]
	return i, ok
}
