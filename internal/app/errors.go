package app

import (
	"errors"

	"github.com/Guilhem-Bonnet/zetflix/internal/ports"
)

var ErrNotFound = ports.ErrNotFound

// ErrNotConfigured est renvoyé avant tout appel réseau quand le token TMDB
// est absent ou encore à sa valeur d'exemple.
var ErrNotConfigured = errors.New("tmdb api token not configured")

// ErrUpstream enveloppe tout échec réseau ou statut HTTP non-2xx.
var ErrUpstream = errors.New("upstream request failed")

var ErrInvalidInput = errors.New("invalid input")

// CodedError porte un code stable exposé aux clients.
//
// Codes: not_configured, network_error, http_status, decode_error.
type CodedError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CodedError) Unwrap() error { return e.Err }

// ErrorCode renvoie le code d'une CodedError de la chaîne, ou "".
func ErrorCode(err error) string {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
