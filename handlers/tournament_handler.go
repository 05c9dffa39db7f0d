package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/dosada05/swiss-tournament-engine/middleware"
	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/dosada05/swiss-tournament-engine/pairing"
	"github.com/dosada05/swiss-tournament-engine/storage"
	"github.com/dosada05/swiss-tournament-engine/tournament"
	"github.com/dosada05/swiss-tournament-engine/ws"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// tournamentEntry pairs an in-memory Tournament with the mutex that
// serializes HTTP access to it, per SPEC_FULL.md's concurrency note:
// the engine itself has no internal locking.
type tournamentEntry struct {
	mu          sync.Mutex
	t           *tournament.Tournament
	organizerID string
}

// TournamentHandler exposes the Tournament Controller over HTTP. It
// keeps live tournaments in memory, lazily hydrated from the
// repository, and persists a snapshot (plus an R2 backup) after every
// mutating operation.
type TournamentHandler struct {
	repo   storage.TournamentRepository
	backup *storage.BackupUploader
	hub    *ws.Hub
	logger *slog.Logger
	cfg    tournament.Config

	mu      sync.Mutex
	entries map[string]*tournamentEntry
}

func NewTournamentHandler(repo storage.TournamentRepository, backup *storage.BackupUploader, hub *ws.Hub, cfg tournament.Config, logger *slog.Logger) *TournamentHandler {
	return &TournamentHandler{
		repo:    repo,
		backup:  backup,
		hub:     hub,
		logger:  logger,
		cfg:     cfg,
		entries: make(map[string]*tournamentEntry),
	}
}

func (h *TournamentHandler) entry(ctx context.Context, id string) (*tournamentEntry, error) {
	h.mu.Lock()
	e, ok := h.entries[id]
	h.mu.Unlock()
	if ok {
		return e, nil
	}

	t, organizerID, err := h.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	e = &tournamentEntry{t: t, organizerID: organizerID}

	h.mu.Lock()
	h.entries[id] = e
	h.mu.Unlock()
	return e, nil
}

// authorizeOrganizer rejects a mutating request whose JWT subject does
// not own e, per SPEC_FULL.md §3.1's OrganizerUserID association: who
// may pair/reassign/record results for a tournament is an HTTP-layer
// authorization concern, not an engine invariant.
func authorizeOrganizer(w http.ResponseWriter, r *http.Request, e *tournamentEntry) bool {
	organizerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "organizer identity required")
		return false
	}
	if organizerID != e.organizerID {
		errorResponse(w, http.StatusForbidden, "you do not own this tournament")
		return false
	}
	return true
}

// persist saves the Postgres row and uploads the R2 backup concurrently
// and waits for both, so the response waits for the slower of the two.
// The first error cancels the other write's context; errors are logged,
// not returned to the client.
func (h *TournamentHandler) persist(ctx context.Context, id string, e *tournamentEntry, round int) {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return h.repo.Save(gCtx, id, e.organizerID, e.t)
	})
	if h.backup != nil {
		g.Go(func() error {
			_, err := h.backup.BackupRound(gCtx, id, round, e.t)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist tournament", slog.String("tournament_id", id), slog.Any("error", err))
	}
}

// --- Create ---

type playerRequest struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

type createTournamentRequest struct {
	Name          string          `json:"name"`
	NumRounds     int             `json:"num_rounds"`
	TiebreakOrder []string        `json:"tiebreak_order"`
	Players       []playerRequest `json:"players"`
}

func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	organizerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "organizer identity required")
		return
	}

	var req createTournamentRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	var tiebreakOrder []models.TieBreakKey
	for _, s := range req.TiebreakOrder {
		key, err := models.ParseTieBreakKey(s)
		if err != nil {
			badRequestResponse(w, err)
			return
		}
		tiebreakOrder = append(tiebreakOrder, key)
	}

	t, err := tournament.NewTournament(req.Name, req.NumRounds, tiebreakOrder, h.cfg)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	playerIDs := make([]string, 0, len(req.Players))
	for _, p := range req.Players {
		id, err := t.AddPlayer(p.Name, p.Rating)
		if err != nil {
			badRequestResponse(w, err)
			return
		}
		playerIDs = append(playerIDs, id)
	}

	id, err := newTournamentID()
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	e := &tournamentEntry{t: t, organizerID: organizerID}
	h.mu.Lock()
	h.entries[id] = e
	h.mu.Unlock()
	h.persist(r.Context(), id, e, 0)

	writeJSON(w, http.StatusCreated, jsonResponse{"id": id, "player_ids": playerIDs})
}

// --- Players ---

func (h *TournamentHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := h.entry(r.Context(), id)
	if err != nil {
		mapEngineError(w, err)
		return
	}
	if !authorizeOrganizer(w, r, e) {
		return
	}

	var req playerRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	e.mu.Lock()
	playerID, err := e.t.AddPlayer(req.Name, req.Rating)
	if err == nil {
		h.persist(r.Context(), id, e, e.t.CurrentRound)
	}
	e.mu.Unlock()

	if err != nil {
		badRequestResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"id": playerID})
}

func (h *TournamentHandler) WithdrawPlayer(w http.ResponseWriter, r *http.Request) {
	h.setPlayerActive(w, r, false)
}

func (h *TournamentHandler) ReactivatePlayer(w http.ResponseWriter, r *http.Request) {
	h.setPlayerActive(w, r, true)
}

func (h *TournamentHandler) setPlayerActive(w http.ResponseWriter, r *http.Request, active bool) {
	id := chi.URLParam(r, "id")
	playerID := chi.URLParam(r, "playerID")

	e, err := h.entry(r.Context(), id)
	if err != nil {
		mapEngineError(w, err)
		return
	}
	if !authorizeOrganizer(w, r, e) {
		return
	}

	e.mu.Lock()
	if active {
		err = e.t.Reactivate(playerID)
	} else {
		err = e.t.Withdraw(playerID)
	}
	if err == nil {
		h.persist(r.Context(), id, e, e.t.CurrentRound)
	}
	e.mu.Unlock()

	if err != nil {
		mapEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"})
}

// --- Rounds ---

type pairNextRoundRequest struct {
	RoundNumber      int        `json:"round_number"`
	AllowRepeatPolicy string    `json:"allow_repeat_policy"`
	ApprovedRepeats  [][2]string `json:"approved_repeats"`
}

func (h *TournamentHandler) PairNextRound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := h.entry(r.Context(), id)
	if err != nil {
		mapEngineError(w, err)
		return
	}
	if !authorizeOrganizer(w, r, e) {
		return
	}

	var req pairNextRoundRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var allowRepeat pairing.AllowRepeatFunc
	switch req.AllowRepeatPolicy {
	case "always":
		allowRepeat = func(a, b string) bool { return true }
	case "ask":
		if len(req.ApprovedRepeats) == 0 {
			preview, err := e.t.PreviewRound(req.RoundNumber)
			if err != nil {
				mapEngineError(w, err)
				return
			}
			if len(preview.Unscheduled) > 0 {
				candidates := make([]string, 0, len(preview.Unscheduled))
				for _, p := range preview.Unscheduled {
					candidates = append(candidates, p.ID)
				}
				errorResponse(w, http.StatusConflict, jsonResponse{
					"error":      pairing.ErrRepeatPairingRequired.Error(),
					"candidates": candidates,
				})
				return
			}
		} else {
			approved := make(map[[2]string]bool, len(req.ApprovedRepeats))
			for _, pair := range req.ApprovedRepeats {
				approved[normalizePair(pair)] = true
			}
			allowRepeat = func(a, b string) bool { return approved[normalizePair([2]string{a, b})] }
		}
	}

	result, err := e.t.PairNextRound(req.RoundNumber, allowRepeat)
	if err != nil {
		mapEngineError(w, err)
		return
	}

	h.persist(r.Context(), id, e, e.t.CurrentRound)
	h.hub.BroadcastToRoom(id, ws.EventRoundPaired, jsonResponse{
		"round":       req.RoundNumber,
		"bye_id":      result.Round.ByeID,
		"unscheduled": unscheduledIDs(result.Unscheduled),
	})

	writeJSON(w, http.StatusOK, jsonResponse{
		"pairings":    result.Round.Pairings,
		"bye_id":      result.Round.ByeID,
		"unscheduled": unscheduledIDs(result.Unscheduled),
	})
}

func normalizePair(pair [2]string) [2]string {
	if pair[0] > pair[1] {
		return [2]string{pair[1], pair[0]}
	}
	return pair
}

func unscheduledIDs(players []*models.Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}

type reassignRequest struct {
	PlayerAID     string `json:"player_a_id"`
	NewOpponentID string `json:"new_opponent_id"`
}

func (h *TournamentHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	e, err := h.entry(r.Context(), id)
	if err != nil {
		mapEngineError(w, err)
		return
	}
	if !authorizeOrganizer(w, r, e) {
		return
	}

	var req reassignRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	e.mu.Lock()
	err = e.t.Reassign(round, req.PlayerAID, req.NewOpponentID)
	if err == nil {
		h.persist(r.Context(), id, e, e.t.CurrentRound)
	}
	e.mu.Unlock()

	if err != nil {
		mapEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"})
}

type resultRequest struct {
	WhiteID    string  `json:"white_id"`
	BlackID    string  `json:"black_id"`
	WhiteScore float64 `json:"white_score"`
}

type recordResultsRequest struct {
	Results []resultRequest `json:"results"`
}

func (h *TournamentHandler) RecordResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	e, err := h.entry(r.Context(), id)
	if err != nil {
		mapEngineError(w, err)
		return
	}
	if !authorizeOrganizer(w, r, e) {
		return
	}

	var req recordResultsRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	entries := make([]tournament.ResultEntry, 0, len(req.Results))
	for _, res := range req.Results {
		entries = append(entries, tournament.ResultEntry{
			WhiteID:    res.WhiteID,
			BlackID:    res.BlackID,
			WhiteScore: res.WhiteScore,
		})
	}

	e.mu.Lock()
	warnings, err := e.t.RecordResults(round, entries)
	if err == nil {
		h.persist(r.Context(), id, e, e.t.CurrentRound)
	}
	e.mu.Unlock()

	if err != nil {
		mapEngineError(w, err)
		return
	}

	h.hub.BroadcastToRoom(id, ws.EventResultsRecorded, jsonResponse{"round": round, "warnings": warnings})
	writeJSON(w, http.StatusOK, jsonResponse{"warnings": warnings})
}

// --- Standings ---

type standingRow struct {
	ID          string                         `json:"id"`
	Name        string                         `json:"name"`
	Score       float64                        `json:"score"`
	Tiebreakers map[string]float64              `json:"tiebreakers"`
}

func (h *TournamentHandler) Standings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := h.entry(r.Context(), id)
	if err != nil {
		mapEngineError(w, err)
		return
	}

	e.mu.Lock()
	ranked := e.t.Standings()
	rows := make([]standingRow, 0, len(ranked))
	for _, p := range ranked {
		tb := make(map[string]float64, len(p.Tiebreakers))
		for k, v := range p.Tiebreakers {
			tb[k.String()] = v
		}
		rows = append(rows, standingRow{ID: p.ID, Name: p.Name, Score: p.Score(), Tiebreakers: tb})
	}
	e.mu.Unlock()

	h.hub.BroadcastToRoom(id, ws.EventStandingsUpdated, rows)
	writeJSON(w, http.StatusOK, jsonResponse{"standings": rows})
}
