package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dosada05/swiss-tournament-engine/pairing"
	"github.com/dosada05/swiss-tournament-engine/storage"
	"github.com/dosada05/swiss-tournament-engine/tournament"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		serverErrorResponse(w, err)
		return
	}
	js = append(js, '\n')
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
}

func errorResponse(w http.ResponseWriter, status int, message interface{}) {
	writeJSON(w, status, jsonResponse{"error": message})
}

func serverErrorResponse(w http.ResponseWriter, err error) {
	fmt.Printf("internal server error: %v\n", err)
	errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func badRequestResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter) {
	errorResponse(w, http.StatusNotFound, "the requested resource could not be found")
}

func conflictResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusConflict, err.Error())
}

// mapEngineError maps the pairing/tournament sentinel errors to HTTP
// status codes per SPEC_FULL.md §7.
func mapEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tournament.ErrNotFound),
		errors.Is(err, pairing.ErrPlayerNotFound),
		errors.Is(err, storage.ErrTournamentNotFound):
		notFoundResponse(w)

	case errors.Is(err, pairing.ErrPairingInfeasible),
		errors.Is(err, pairing.ErrRepeatPairingRequired):
		conflictResponse(w, err)

	case errors.Is(err, tournament.ErrInvalidState),
		errors.Is(err, pairing.ErrSameAsCurrent),
		errors.Is(err, pairing.ErrAmbiguousBye),
		errors.Is(err, tournament.ErrRoundOutOfSequence),
		errors.Is(err, tournament.ErrUnknownPlayer),
		errors.Is(err, tournament.ErrAlreadyRecorded),
		errors.Is(err, tournament.ErrMismatchedPairing),
		errors.Is(err, tournament.ErrMissingRoundHistory),
		errors.Is(err, tournament.ErrTiebreakOrderInvalid):
		badRequestResponse(w, err)

	default:
		serverErrorResponse(w, err)
	}
}
