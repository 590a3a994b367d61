package core

import (
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// CalculatePlayerTotal sums the player's computed score across every scoring
// column of the template. Columns flagged non-scoring (trackers, notes) are
// computed for display but excluded here.
func CalculatePlayerTotal(template *schema.GameTemplate, player *schema.Player, allPlayers []schema.Player) float64 {
	total := 0.0
	for i := range template.Columns {
		col := &template.Columns[i]
		if !col.IsScoring {
			continue
		}
		total += CalculateColumnScore(col, player.Scores[col.ID].Parts, &schema.ScoringContext{
			AllColumns:   template.Columns,
			PlayerScores: player.Scores,
			AllPlayers:   allPlayers,
		})
	}
	return total
}

// BuildBoard computes the full scoreboard for a session: every column score
// for every player, scoring-column totals, rows ranked by total descending.
func BuildBoard(session *schema.Session) []schema.BoardRow {
	rows := make([]schema.BoardRow, 0, len(session.Players))
	for pi := range session.Players {
		player := &session.Players[pi]
		row := schema.BoardRow{
			PlayerID:     player.ID,
			PlayerName:   player.Name,
			ColumnScores: make(map[string]float64, len(session.Template.Columns)),
		}
		for ci := range session.Template.Columns {
			col := &session.Template.Columns[ci]
			row.ColumnScores[col.ID] = CalculateColumnScore(col, player.Scores[col.ID].Parts, &schema.ScoringContext{
				AllColumns:   session.Template.Columns,
				PlayerScores: player.Scores,
				AllPlayers:   session.Players,
			})
			if col.IsScoring {
				row.Total += row.ColumnScores[col.ID]
			}
		}
		rows = append(rows, row)
	}
	return RankBoard(rows)
}
