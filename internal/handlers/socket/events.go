package socket

import (
	"encoding/json"

	"github.com/19506jk/briscola-server/internal/models"
)

// Events sent by clients
const (
	EventSubmitName    = "submitName"
	EventReadyStatus   = "readyStatus"
	EventBid           = "bid"
	EventSetCalledCard = "setCalledCard"
	EventPlayCard      = "playCard"
	EventNewRound      = "newRound"
	EventGetState      = "getState"
)

// Events sent by the server
const (
	EventSeatAssigned      = "seatAssigned"
	EventPlayerJoined      = "playerJoined"
	EventPlayerExit        = "playerExit"
	EventRoundAborted      = "roundAborted"
	EventPlayerReadyStatus = "playerReadyStatus"
	EventSetCards          = "setCards"
	EventBiddingStarts     = "biddingStarts"
	EventPlayerBid         = "playerBid"
	EventPlayerPassedBid   = "playerPassedBid"
	EventSetCaller         = "setCaller"
	EventGameStarts        = "gameStarts"
	EventCardPlayed        = "cardPlayed"
	EventNextPlayer        = "nextPlayer"
	EventRoundResult       = "roundResult"
	EventFinalResult       = "finalResult"
	EventRoundStarts       = "roundStarts"
	EventGameState         = "gameState"
	EventGameError         = "gameError"
)

// Message is the envelope of every frame in both directions
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// BidPayload is the data of a bid event
type BidPayload struct {
	Passed bool `json:"passed"`
	Points int  `json:"points"`
}

// SeatAssignedPayload tells a client which seat it took
type SeatAssignedPayload struct {
	Index      int    `json:"index"`
	PlayerName string `json:"playerName"`
}

// PlayerReadyStatusPayload announces a ready toggle
type PlayerReadyStatusPayload struct {
	PlayerName string `json:"playerName"`
	Ready      bool   `json:"ready"`
}

// PlayerBidPayload announces a bid
type PlayerBidPayload struct {
	Player     string `json:"player"`
	Bid        int    `json:"bid"`
	HighestBid int    `json:"highestBid"`
}

// PlayerPassedBidPayload announces a pass
type PlayerPassedBidPayload struct {
	Player string `json:"player"`
}

// SetCallerPayload announces who won the bidding
type SetCallerPayload struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	Bid   int    `json:"bid"`
}

// GameStartsPayload announces the called card and the first player
type GameStartsPayload struct {
	Player     int         `json:"player"`
	CalledCard models.Card `json:"calledCard"`
	Trump      models.Suit `json:"trump"`
}

// RoundResultPayload announces a resolved trick
type RoundResultPayload struct {
	Winner models.PlayedCard `json:"winner"`
	Points int               `json:"points"`
	Scores []int             `json:"scores"`
}

// FinalResultPayload announces how the deal ended. It carries the team
// totals only, never who the guilty player was.
type FinalResultPayload struct {
	GuiltyPoints    int `json:"guiltyPoints"`
	NonGuiltyPoints int `json:"nonGuiltyPoints"`
	Bid             int `json:"bid"`
}

// RoundStartsPayload announces a new deal
type RoundStartsPayload struct {
	Phase models.Phase `json:"phase"`
}

// GameErrorPayload tells the sender why its event failed
type GameErrorPayload struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}
