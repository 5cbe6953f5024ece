package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind kategorisiert Fehler danach, wie der HTTP-Layer sie behandeln soll.
type Kind string

const (
	// KindMalformedInput: unlesbare numerische Teilfelder. Wird innerhalb der
	// Aggregation zu "nicht vorhanden" bzw. 0 degradiert und verlässt sie nie.
	KindMalformedInput Kind = "MALFORMED_INPUT"

	// KindDataIntegrity: z.B. PMID ohne Eintrag in den PMID-Statistiken. Nur geloggt.
	KindDataIntegrity Kind = "DATA_INTEGRITY"

	// KindUpstreamFailure: Verbindung, Query oder externer Prozess ist fehlgeschlagen.
	KindUpstreamFailure Kind = "UPSTREAM_FAILURE"

	// KindSemanticRejection: vom Client korrigierbare Eingabe (unbekannter PTM-Typ etc.).
	KindSemanticRejection Kind = "SEMANTIC_REJECTION"

	// KindNotFound: angefragter Eintrag existiert nicht.
	KindNotFound Kind = "NOT_FOUND"
)

// Error trägt Kind, Nachricht und optional die Ursache.
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

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is vergleicht nur die Kategorie, damit errors.Is(err, apperrors.ErrNotFound) funktioniert.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels für errors.Is
var (
	ErrSemanticRejection = &Error{Kind: KindSemanticRejection}
	ErrUpstreamFailure   = &Error{Kind: KindUpstreamFailure}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrDataIntegrity     = &Error{Kind: KindDataIntegrity}
)

func Rejectf(format string, args ...any) error {
	return &Error{Kind: KindSemanticRejection, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Integrityf(format string, args ...any) error {
	return &Error{Kind: KindDataIntegrity, Message: fmt.Sprintf(format, args...)}
}

// Upstream verpackt einen Fehler aus DB oder externem Prozess.
func Upstream(message string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: KindUpstreamFailure, Message: message, Cause: cause}
}

// KindOf liefert die Kategorie; unbekannte Fehler gelten als Upstream-Fehler.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstreamFailure
}

// StatusCode bildet die Kategorie auf einen HTTP-Status ab.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindSemanticRejection, KindMalformedInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
