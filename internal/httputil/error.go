package httputil

import (
	"net/http"

	"github.com/charmbracelet/log"
)

type errorBody struct {
	Error string `json:"error"`
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	log.Error(msg, "error", err)
	WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	warn("bad request", msg, err)
	WriteJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func Unauthorized(w http.ResponseWriter, msg string) {
	warn("unauthorized", msg, nil)
	WriteJSON(w, http.StatusUnauthorized, errorBody{Error: msg})
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	warn("not found", msg, err)
	WriteJSON(w, http.StatusNotFound, errorBody{Error: msg})
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	warn("conflict", msg, err)
	WriteJSON(w, http.StatusConflict, errorBody{Error: msg})
}

func warn(kind, msg string, err error) {
	if err != nil {
		log.Warn(kind, "message", msg, "error", err)
	} else {
		log.Warn(kind, "message", msg)
	}
}
