package types

// RankingQuery is a validated ranking read request.
type RankingQuery struct {
	ScoreType ScoreType
	Period    Period
	Page      int
	PageSize  int
	// ViewerID locates the requester's own rank; empty means anonymous.
	ViewerID string
}

// MatchQuery is a validated matching read request.
type MatchQuery struct {
	ViewerID string
	Type     MatchType
	Page     int
	PageSize int
	// MinScore overrides the configured floor when positive.
	MinScore float64
}
