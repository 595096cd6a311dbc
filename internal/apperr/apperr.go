package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classe les erreurs selon leur traitement côté appelant
type Kind int

const (
	// KindValidation : entrée malformée, corrigeable par l'appelant
	KindValidation Kind = iota
	// KindState : mutation hors phase de cycle de vie autorisée, rejetée sans retry
	KindState
	// KindNotFound : challenge/participant/ligne référencé inexistant
	KindNotFound
	// KindPersistence : échec de stockage, loggé, retry sans risque
	KindPersistence
)

// Error porte une catégorie, un message destiné à l'utilisateur et la
// cause interne
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func State(format string, args ...interface{}) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Persistence(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindPersistence, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind teste la catégorie d'une erreur, wrappée ou non
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// HTTPStatus mappe une erreur vers un code HTTP. Les erreurs inconnues
// sont traitées comme des échecs de persistance
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindState:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage retourne le texte présentable à l'utilisateur. Les erreurs
// de persistance restent génériques, la cause part dans les logs
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindPersistence {
		return "Something went wrong. Please try again."
	}
	return e.Message
}
