package routes

import "errors"

var (
	ErrRouteNotFound      = errors.New("routes: route not found")
	ErrMissingParam       = errors.New("routes: missing route param")
	ErrDuplicateName      = errors.New("routes: duplicate route name")
	ErrUnsupportedPattern = errors.New("routes: pattern cannot be expressed as a chi route")
)
