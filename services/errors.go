package services

import "errors"

// Errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed     = errors.New("validation failed")
	ErrLineupRequired       = errors.New("lineup must contain at least one entry")
	ErrWinnerNotInLineup    = errors.New("winner is not part of the lineup")
	ErrInvalidBracketValue  = errors.New("bracket must be between 1 and 5")
	ErrCommanderRequired    = errors.New("commander name is required")
	ErrPlayerRequired       = errors.New("player name is required")
	ErrInvalidAlpha         = errors.New("alpha must be a non-negative number")
	ErrInvalidLimit         = errors.New("limit must be a positive number")
	ErrExportRenderFailed   = errors.New("failed to render export artifact")
	ErrSnapshotUploadFailed = errors.New("failed to upload snapshot")

	ErrGameNotFound      = errors.New("game not found")
	ErrCommanderNotFound = errors.New("commander not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrSnapshotNotFound  = errors.New("snapshot not found")
)
