package apperr

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// Respond is the central error responder: every failed request funnels
// through here. Unknown error types become a generic 500 so raw storage or
// transport details never reach clients.
func Respond(w http.ResponseWriter, err error) {
	appErr, ok := err.(*AppError)
	if !ok {
		appErr = &AppError{Code: ErrDatabase, Message: "internal server error", Origin: err}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(appErr.Code))
	json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
	}})
}
