package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"photoRenamer/naming"
)

type apiError struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

type variablesReq struct {
	Metadata string `json:"metadata"`
}

type formatReq struct {
	Metadata string `json:"metadata"`
	Pattern  string `json:"pattern"`
}

type formatResp struct {
	Filename string `json:"filename"`
}

//Health Health Check controller
func health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var healthCheck = "{\"status\": \"UP\"}"
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(healthCheck))
	})
}

// variables returns every variable a pattern may reference for the posted
// metadata dump.
func variables() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req variablesReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
			return
		}
		WriteJSON(w, http.StatusOK, naming.Variables(naming.ParseMetadata(req.Metadata)))
	})
}

// format computes the filename for the posted metadata dump and pattern.
func format() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req formatReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
			return
		}
		if req.Pattern == "" {
			WriteJSON(w, http.StatusBadRequest, apiError{Error: "pattern required"})
			return
		}

		vars := naming.Variables(naming.ParseMetadata(req.Metadata))
		filename, err := naming.FormatPattern(req.Pattern, vars)
		if err != nil {
			logrus.WithFields(logrus.Fields{"pattern": req.Pattern}).WithError(err).Info("format rejected")
			if errors.Is(err, naming.ErrMissingVariable) {
				missing, merr := naming.Missing(req.Pattern, vars)
				if merr != nil {
					WriteJSON(w, http.StatusBadRequest, apiError{Error: merr.Error()})
					return
				}
				WriteJSON(w, http.StatusUnprocessableEntity, apiError{Error: err.Error(), Missing: missing})
				return
			}
			WriteJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
			return
		}
		WriteJSON(w, http.StatusOK, formatResp{Filename: filename})
	})
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
