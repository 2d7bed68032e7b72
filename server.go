package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"photoRenamer/handle"
	"photoRenamer/utils"
)

type apiError struct {
	Error string `json:"error"`
}

type healthResp struct {
	Ok        bool      `json:"ok"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// newRouter builds the API. Journal routes answer 503 when dbFile is empty.
func newRouter(dbFile string) http.Handler {
	r := mux.NewRouter()
	handle.InitializeRoutes(r)
	r.HandleFunc("/api/health", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/renames", withDB(dbFile, handleListRenames)).Methods(http.MethodGet)
	r.HandleFunc("/api/renames/{batch}", withDB(dbFile, handleGetBatch)).Methods(http.MethodGet)
	r.HandleFunc("/api/clear", withDB(dbFile, func(w http.ResponseWriter, r *http.Request, db *DB) {
		if err := db.clearDBTables(); err != nil {
			handle.WriteJSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
			return
		}
		handle.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
	})).Methods(http.MethodPost)

	cors := handlers.CORS(
		handlers.AllowedHeaders([]string{"Content-Type", "Accept"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedOrigins([]string{"*"}),
	)
	return cors(r)
}

// StartServer serves the API on addr until SIGINT or SIGTERM.
func StartServer(addr string, dbFile string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(dbFile),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go utils.Quit("HTTP API", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logrus.WithError(err).Warn("shutdown")
		}
	})

	logrus.WithField("addr", addr).Info("Serving HTTP API")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	handle.WriteJSON(w, http.StatusOK, healthResp{Ok: true, Version: version, Timestamp: time.Now()})
}

func withDB(dbFile string, next func(http.ResponseWriter, *http.Request, *DB)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dbFile == "" {
			handle.WriteJSON(w, http.StatusServiceUnavailable, apiError{Error: "journal disabled (start with -journal)"})
			return
		}
		db, err := openAndInitDB(dbFile)
		if err != nil {
			handle.WriteJSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
			return
		}
		defer db.Close()
		next(w, r, db)
	}
}

func handleListRenames(w http.ResponseWriter, r *http.Request, db *DB) {
	offset, limit := parsePage(r)
	rows, err := db.listRenameRows(offset, limit)
	if err != nil {
		handle.WriteJSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
		return
	}
	handle.WriteJSON(w, http.StatusOK, rows)
}

func handleGetBatch(w http.ResponseWriter, r *http.Request, db *DB) {
	batch := mux.Vars(r)["batch"]
	rows, err := db.listBatchRows(batch)
	if err != nil {
		handle.WriteJSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
		return
	}
	if len(rows) == 0 {
		handle.WriteJSON(w, http.StatusNotFound, apiError{Error: "not found"})
		return
	}
	handle.WriteJSON(w, http.StatusOK, rows)
}

func parsePage(r *http.Request) (int64, int64) {
	q := r.URL.Query()
	var (
		offset int64 = 0
		limit  int64 = 50
	)
	if s := q.Get("offset"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v >= 0 {
			offset = v
		}
	}
	if s := q.Get("limit"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	return offset, limit
}
