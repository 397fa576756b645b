package game

import "errors"

var (
	ErrIllegalPlacement             = errors.New("illegal placement")
	ErrIllegalUpgrade               = errors.New("illegal upgrade")
	ErrIllegalRobberMove            = errors.New("illegal robber move")
	ErrInsufficientSupply           = errors.New("insufficient supply")
	ErrInsufficientResources        = errors.New("insufficient resources")
	ErrMissingDevelopmentCard       = errors.New("missing development card")
	ErrDevelopmentCardAlreadyPlayed = errors.New("development card already played this turn")
	ErrActionNotLegalNow            = errors.New("action not legal now")
)
