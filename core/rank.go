package core

import (
	"sort"

	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// ScoreRank returns the standard competition rank of value within allValues:
// ties share the lowest rank and the next distinct value's rank skips ahead
// by the tie count, so [10, 10, 8] ranks as 1, 1, 3. Higher values rank
// better. allValues is the full multiset of every player's computed value,
// not deduplicated.
func ScoreRank(value float64, allValues []float64) int {
	rank := 1
	for _, v := range allValues {
		if v > value {
			rank++
		}
	}
	return rank
}

// PlayerRank ranks by position among individual players. With every value
// computed the same way for every player this coincides with ScoreRank;
// both modes are kept distinct in the template model and pinned to the same
// competition-ranking behavior by tests.
func PlayerRank(value float64, allValues []float64) int {
	rank := 1
	for _, v := range allValues {
		if v > value {
			rank++
		}
	}
	return rank
}

// TieCount returns how many players, including the player itself, share the
// given value.
func TieCount(value float64, allValues []float64) int {
	count := 0
	for _, v := range allValues {
		if v == value {
			count++
		}
	}
	return count
}

// RankBoard sorts scoreboard rows by total in descending order. Equal totals
// keep their original (player) order so the board is stable across refreshes.
func RankBoard(rows []schema.BoardRow) []schema.BoardRow {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	return rows
}
