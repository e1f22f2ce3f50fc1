package models

// NettingSet is a named group of trade identifiers whose P&L offsets before
// margin is computed.
//
// Two constructions exist: one bilateral set per counterparty (named
// "BILAT::<cpty>") partitioning the book, and a single CCP set ("CCP::ALL")
// pooling every trade. The namespaced prefixes keep the two from colliding.
type NettingSet struct {
	Name     string
	TradeIDs []string
}
