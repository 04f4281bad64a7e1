package config

// UI colors
const (
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00
	GoldColor    = 0xFFD700
	DuelColor    = 0xFF6600
	HouseColor   = 0xFF4500
)

// Currency display
const (
	CurrencySymbol = "Z"
)

// Leaderboard paging
const (
	LeaderboardSize = 100
	AccountsPerPage = 10
)
