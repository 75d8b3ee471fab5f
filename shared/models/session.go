// shared/models/session.go
package models

import "time"

// TimestampLayout renders timestamps as UTC ISO-8601 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// AuctionSession is the live state of the auction floor.
type AuctionSession struct {
	CurrentPlayerIndex int     `json:"currentPlayerIndex"`
	AuctionActive      bool    `json:"auctionActive"`
	CurrentBid         float64 `json:"currentBid"`
	CurrentBidder      any     `json:"currentBidder"` // null until someone bids
	Timestamp          string  `json:"timestamp"`
}

// NewAuctionSession returns an inactive session stamped with now.
func NewAuctionSession(now time.Time) AuctionSession {
	return AuctionSession{
		CurrentPlayerIndex: 0,
		AuctionActive:      false,
		CurrentBid:         0,
		CurrentBidder:      nil,
		Timestamp:          now.UTC().Format(TimestampLayout),
	}
}
