package game

import (
	"strings"

	"github.com/minaorangina/makao/deck"
)

func intSliceToSet(s []int) map[int]struct{} {
	set := map[int]struct{}{}
	for _, v := range s {
		set[v] = struct{}{}
	}

	return set
}

func indicesUnique(indices []int) bool {
	return len(intSliceToSet(indices)) == len(indices)
}

func sliceContainsString(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

func shortCards(cards []deck.Card) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, c.Short())
	}
	return strings.Join(parts, "  ")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
