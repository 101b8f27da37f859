package result

import "github.com/19506jk/briscola-server/internal/models"

type SaveResultInput struct {
	Record *models.GameRecord
}

type GetResultInput struct {
	ResultID string
}

type ListRecentResultsInput struct {
	// Limit caps the number of records, DefaultLimit when zero
	Limit int
}

type ListRecentResultsOutput struct {
	Records []*models.GameRecord
}

type GetStandingsInput struct {
	// Limit caps the number of standings, zero returns all
	Limit int
}

type GetStandingsOutput struct {
	Standings []*models.Standing
}
