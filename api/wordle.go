package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/bent101/wordle-entropy/config"
	"github.com/bent101/wordle-entropy/history"
	"github.com/bent101/wordle-entropy/solver"
	"github.com/bent101/wordle-entropy/words"
)

// Path is where the recommendation is served.
const Path = "/api/best-word"

// Recorder remembers served words.
type Recorder interface {
	Record(ctx context.Context, w solver.ScoredWord, starter bool) error
}

// Server answers best-word requests.
type Server struct {
	Source   words.Source
	Ranker   *solver.Ranker
	Recorder Recorder // optional
	Fallback solver.ScoredWord
	Now      func() time.Time
}

// Result is a successful recommendation.
type Result struct {
	Status          string            `json:"status"`
	BestWord        solver.ScoredWord `json:"best_word"`
	Timestamp       string            `json:"timestamp"`
	IsPrecalculated bool              `json:"is_precalculated"`

	Starter   bool `json:"-"`
	Remaining int  `json:"-"`
}

// ErrorResult is sent instead of Result when no recommendation could be made.
type ErrorResult struct {
	Status   string             `json:"status"`
	Message  string             `json:"message"`
	Fallback *solver.ScoredWord `json:"fallback,omitempty"`
}

// New builds a Server from cfg. The returned func closes whatever New opened.
func New(cfg config.Config) (*Server, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	opts, err := cfg.RankerOptions()
	if err != nil {
		return nil, nil, err
	}

	src, store, err := OpenSource(cfg)
	if err != nil {
		return nil, nil, err
	}

	s := &Server{
		Source:   src,
		Ranker:   solver.NewRanker(opts...),
		Fallback: cfg.Fallback,
	}
	closer := func() error { return nil }
	if store != nil {
		s.Recorder = store
		closer = store.Close
	}
	return s, closer, nil
}

// OpenSource returns the word lists cfg describes: the data directory, plus
// the served history as used words when cfg.HistoryDB is set. The store is
// nil without a history database; otherwise the caller closes it.
func OpenSource(cfg config.Config) (words.Source, *history.Store, error) {
	var src words.Source = words.Dir(cfg.DataDir)
	if cfg.HistoryDB == "" {
		return src, nil, nil
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return nil, nil, err
	}
	return words.Merge{Source: src, Extra: store.Words}, store, nil
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// BestWord loads the lists, ranks them and records the pick.
func (s *Server) BestWord(ctx context.Context) (Result, error) {
	lists, err := s.Source.Load(ctx)
	if err != nil {
		return Result{}, err
	}
	used := solver.NewWordSet(lists.Used...)

	ranking, err := s.Ranker.Rank(solver.NewWordSet(lists.Answers...), used)
	if err != nil {
		return Result{}, err
	}

	if s.Recorder != nil {
		if err := s.Recorder.Record(ctx, ranking.Best, ranking.Starter); err != nil {
			log.Printf("Warning: failed to record %s: %v", ranking.Best.Word, err)
		}
	}

	return Result{
		Status:          "success",
		BestWord:        ranking.Best,
		Timestamp:       s.now().Format(time.RFC3339),
		IsPrecalculated: used.Len() == 0,
		Starter:         ranking.Starter,
		Remaining:       ranking.Remaining,
	}, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodGet, http.MethodHead:
	default:
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResult{
			Status:  "error",
			Message: fmt.Sprintf("method %s not allowed", r.Method),
		})
		return
	}

	result, err := s.bestWord(r.Context())
	if err != nil {
		log.Printf("ERROR: best word: %v", err)
		res := ErrorResult{Status: "error", Message: err.Error()}
		if s.Fallback.Word != "" {
			fallback := s.Fallback
			res.Fallback = &fallback
		}
		writeJSON(w, http.StatusInternalServerError, res)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// bestWord is BestWord with panics turned into errors.
func (s *Server) bestWord(ctx context.Context) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if s.Source == nil || s.Ranker == nil {
		return Result{}, errors.New("server not configured")
	}
	return s.BestWord(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Warning: failed to write response: %v", err)
	}
}

var (
	defaultOnce   sync.Once
	defaultServer *Server
	defaultErr    error
)

// Handler is the serverless entry point. It reads its config from the file
// named by WORDLE_CONFIG, or uses the defaults.
func Handler(w http.ResponseWriter, r *http.Request) {
	defaultOnce.Do(func() {
		var cfg config.Config
		cfg, defaultErr = config.Load(os.Getenv("WORDLE_CONFIG"))
		if defaultErr != nil {
			return
		}
		// the store stays open for the life of the process
		defaultServer, _, defaultErr = New(cfg)
	})
	if defaultErr != nil {
		log.Printf("ERROR: init: %v", defaultErr)
		fallback := config.Default().Fallback
		writeJSON(w, http.StatusInternalServerError, ErrorResult{
			Status:   "error",
			Message:  defaultErr.Error(),
			Fallback: &fallback,
		})
		return
	}
	defaultServer.ServeHTTP(w, r)
}
