package gameerrors

import "errors"

// Sentinel errors shared by the game, ai and storage packages. Kept in their
// own package so storage and ai can both depend on them without importing each other.
var (
	ErrUnknownMode      = errors.New("unknown game mode")
	ErrUnknownWeapon    = errors.New("unknown weapon")
	ErrUnknownChampion  = errors.New("unknown champion")
	ErrMalformedRecord  = errors.New("malformed history record")
	ErrIncompleteRecord = errors.New("history record is incomplete")
	ErrNoTrainingData   = errors.New("no training data")
)
