package usecase

import "errors"

var (
	// ErrNoClips means highlight extraction produced nothing usable.
	ErrNoClips = errors.New("no clips could be extracted")
	// ErrNothingPrepared means every clip failed both rendition tiers.
	ErrNothingPrepared = errors.New("no clips could be prepared for composition")
)
