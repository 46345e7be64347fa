// Phrase mining and token assignment.
//
// The miner slides word windows of 2-8 words over the input, scoring
// each repeated phrase by its estimated net byte savings. The assigner
// then drains the candidates best-first, handing out reserved bytes
// until the range runs dry.
package marqant

import (
	"container/heap"
	"strings"
)

// Window sizes for candidate phrases, and the minimum phrase length
// worth considering.
const (
	minWindow    = 2
	maxWindow    = 8
	minPhraseLen = 8
)

// candidate is a mined phrase with its estimated savings.
type candidate struct {
	phrase  string
	count   int
	savings int
}

// phraseHeap is a max-heap over savings. Equal savings break on the
// lexicographically smaller phrase so that selection is deterministic
// regardless of the order candidates were discovered.
type phraseHeap []candidate

func (h phraseHeap) Len() int { return len(h) }

func (h phraseHeap) Less(i, j int) bool {
	if h[i].savings != h[j].savings {
		return h[i].savings > h[j].savings
	}
	return h[i].phrase < h[j].phrase
}

func (h phraseHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *phraseHeap) Push(x any) { *h = append(*h, x.(candidate)) }

func (h *phraseHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// minePhrases builds the candidate heap from content. Counting is a
// direct substring search over the full original content per
// candidate, which is quadratic-ish in document size; acceptable for
// markdown-sized inputs. Duplicate candidates (the same phrase found
// at several positions) are pushed more than once and weeded out by
// the assigner's overlap check.
func minePhrases(content string) *phraseHeap {
	words := strings.Fields(content)
	h := &phraseHeap{}

	for size := minWindow; size <= maxWindow; size++ {
		for i := 0; i+size < len(words); i++ {
			phrase := strings.Join(words[i:i+size], " ")
			if len(phrase) < minPhraseLen {
				continue
			}
			count := strings.Count(content, phrase)
			if count < 2 {
				continue
			}
			savings := len(phrase)*count - (count + len(phrase) + 3)
			if savings <= 0 {
				continue
			}
			heap.Push(h, candidate{phrase: phrase, count: count, savings: savings})
		}
	}

	return h
}

// containsToken reports whether s contains any byte already assigned
// as a token. A phrase carrying a token byte would be re-substituted
// on decode and corrupt the round trip, so such candidates are
// rejected outright.
func containsToken(s string, dict Dictionary) bool {
	for tok := range dict {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// assignTokens drains the heap best-first, allocating reserved bytes
// past the static range. The counter and the assigned-phrase list are
// local values threaded through the loop; concurrent encodes share
// nothing.
//
// A candidate is skipped when it overlaps an already-assigned phrase
// (substring containment in either direction, an approximation that
// misses partial positional overlaps), when an earlier substitution
// already consumed its text, or when its text contains a live token
// byte.
func assignTokens(h *phraseHeap, dict Dictionary, tokenized string) (Dictionary, string) {
	counter := byte(tokenFirst)
	var assigned []string

	for h.Len() > 0 {
		if counter >= tokenLimit {
			break
		}
		if counter == '\n' || counter == '\r' {
			counter++
			continue
		}

		c := heap.Pop(h).(candidate)

		overlaps := false
		for _, a := range assigned {
			if strings.Contains(c.phrase, a) || strings.Contains(a, c.phrase) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		if !strings.Contains(tokenized, c.phrase) {
			continue
		}
		if containsToken(c.phrase, dict) {
			continue
		}

		tok := string(counter)
		dict[tok] = c.phrase
		tokenized = strings.ReplaceAll(tokenized, c.phrase, tok)
		assigned = append(assigned, c.phrase)
		counter++
	}

	return dict, tokenized
}
