package model

// BalanceResponse represents response for GET /wallet/balance
type BalanceResponse struct {
	Address string `json:"address"`
	Wei     string `json:"wei"`
	Ether   string `json:"ether"`
	Symbol  string `json:"symbol"`
}

// LeaderboardEntry is one row of the leaderboard.
type LeaderboardEntry struct {
	Address string `json:"address"`
	Points  uint32 `json:"points"`
	Rank    uint32 `json:"rank"`
}
