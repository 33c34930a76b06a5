package quiz

import "errors"

var (
	ErrBadPhase          = errors.New("bad phase")
	ErrStaleResult       = errors.New("stale result")
	ErrCatalogLoadFailed = errors.New("catalog load failed")
	ErrImageFetchFailed  = errors.New("image fetch failed")
	ErrNoDataAvailable   = errors.New("no catalog loaded")
	ErrInvalidResult     = errors.New("invalid game result")
	ErrNoGames           = errors.New("no games played")
)
