package models

import "time"

// TrickResult is the outcome of one resolved trick
type TrickResult struct {
	// Winner is the winning card and its seat
	Winner PlayedCard `json:"winner"`

	// Points is the total point value of the trick
	Points int `json:"points"`

	// Scores are this deal's points per seat after the trick
	Scores []int `json:"scores"`

	// TrickNumber is the 1-based number of the trick within the deal
	TrickNumber int `json:"trickNumber"`
}

// FinalResult splits a deal's points between the calling team and the rest
type FinalResult struct {
	// GuiltyPoints is the calling team's total (caller plus guilty player)
	GuiltyPoints int `json:"guiltyPoints"`

	// NonGuiltyPoints is everyone else's total
	NonGuiltyPoints int `json:"nonGuiltyPoints"`

	// Bid is the winning bid
	Bid int `json:"bid"`

	// CallerIndex is the seat that won the bidding
	CallerIndex int `json:"callerIndex"`

	// GuiltyIndex is the seat that held the called card
	GuiltyIndex int `json:"guiltyIndex"`

	// CallingTeamWon is true when the calling team made its bid
	CallingTeamWon bool `json:"callingTeamWon"`
}

// GameRecord is a finished deal as stored in the result history
type GameRecord struct {
	// ID is the unique identifier of the record
	ID string `json:"id"`

	// GameID is the game instance the deal belonged to
	GameID string `json:"gameId"`

	// Players are the player names by seat index
	Players []string `json:"players"`

	// Points are the deal's trick points by seat index
	Points []int `json:"points"`

	// CalledCard is the card named by the caller
	CalledCard Card `json:"calledCard"`

	// Result is the final split
	Result FinalResult `json:"result"`

	// CompletedAt is when the last trick was resolved
	CompletedAt time.Time `json:"completedAt"`
}

// CallingTeam returns the names of the caller and the guilty player, once each
func (r *GameRecord) CallingTeam() []string {
	team := []string{r.playerName(r.Result.CallerIndex)}
	if r.Result.GuiltyIndex != r.Result.CallerIndex {
		team = append(team, r.playerName(r.Result.GuiltyIndex))
	}
	return team
}

// Won reports whether the seat was on the side that won the deal
func (r *GameRecord) Won(index int) bool {
	calling := index == r.Result.CallerIndex || index == r.Result.GuiltyIndex
	return calling == r.Result.CallingTeamWon
}

func (r *GameRecord) playerName(index int) string {
	if index < 0 || index >= len(r.Players) {
		return ""
	}
	return r.Players[index]
}

// Standing is a player's accumulated record across stored deals
type Standing struct {
	// PlayerName is the display name of the player
	PlayerName string `json:"playerName"`

	// Points is the total trick points scored
	Points int `json:"points"`

	// Games is the number of deals played
	Games int `json:"games"`

	// Wins is the number of deals won by the player's team
	Wins int `json:"wins"`
}
