package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"postboard/app/errs"
	"postboard/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Generic client messages for infrastructure failures, one per endpoint.
const (
	MsgPostsRetrieveFailed    = "The posts information could not be retrieved."
	MsgPostRetrieveFailed     = "The post information could not be retrieved."
	MsgCommentsRetrieveFailed = "The comments information could not be retrieved."
	MsgPostSaveFailed         = "There was an error while saving the post to the database"
	MsgCommentSaveFailed      = "There was an error while saving the comment to the database"
	MsgPostRemoveFailed       = "The post could not be removed"
	MsgPostModifyFailed       = "The post information could not be modified."
)

// maxBodyBytes caps the request bodies decoded by the controllers.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

func sendJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to write response")
	}
}

func sendError(w http.ResponseWriter, r *http.Request, status int, message string) {
	sendJSON(w, r, status, ErrorResponse{Message: message})
}

// handleError replies with the status and message of a domain error. Any
// other error is logged and answered with a 500 carrying fallback.
func handleError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if httpErr, ok := errs.AsHTTPError(err); ok {
		zerolog.Ctx(r.Context()).Debug().
			Str("code", httpErr.Code).
			Str("path", r.URL.Path).
			Msg(httpErr.Message)
		sendError(w, r, httpErr.Status, httpErr.Message)
		return
	}

	internal := errs.NewInternalServerError(fallback)
	zerolog.Ctx(r.Context()).Error().Err(err).
		Str("code", internal.Code).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	sendError(w, r, internal.Status, internal.Message)
}

// pathID reads the numeric {id} route variable. The route pattern only
// admits digits, so a failure here means the id overflows an int.
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, errs.NewNotFoundError(services.MsgPostNotFound)
	}
	return id, nil
}

// decodeBody fills v from the request body, read up to maxBodyBytes. An
// unreadable or oversized body is only logged; the fields it should have
// carried then fail validation.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) {
	if r.Body == nil {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("ignoring malformed request body")
	}
}
