package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	cacheHeader = "X-Cache"
	cacheHit    = "HIT"
	cacheMiss   = "MISS"
)

// parsePlays returns the requested plays per scenario, or the default when
// raw is empty.
func (s *Server) parsePlays(raw string) (int, bool) {
	if raw == "" {
		return s.opts.DefaultPlays, true
	}
	plays, err := strconv.Atoi(raw)
	if err != nil || plays < 1 || plays > s.opts.MaxPlays {
		return 0, false
	}
	return plays, true
}

func edgeCasesKey(plays int) string {
	return fmt.Sprintf("edge-cases:plays=%d", plays)
}

// handleEdgeCases runs a full catalog audit. Responses are cached per plays
// value and concurrent identical requests share one run.
func (s *Server) handleEdgeCases(w http.ResponseWriter, r *http.Request) {
	plays, ok := s.parsePlays(r.URL.Query().Get("plays"))
	if !ok {
		s.errorHandler.HandleAuditError(w, r, http.StatusBadRequest, ErrTypeInvalidParams, AuditError{
			Error:   "Invalid plays parameter",
			Message: fmt.Sprintf("Plays must be a number between 1 and %s", groupThousands(s.opts.MaxPlays)),
		}, nil)
		return
	}

	ctx := r.Context()
	key := edgeCasesKey(plays)

	if body, hit := s.cacheGet(ctx, key); hit {
		s.writeReport(w, body, cacheHit)
		return
	}

	// The run is shared, so it must outlive the request that started it.
	ch := s.flight.DoChan(key, func() (any, error) {
		return s.runShared(context.WithoutCancel(ctx), key, plays)
	})

	select {
	case <-ctx.Done():
		s.handleAbandoned(w, r, plays, ctx.Err())
	case res := <-ch:
		if p, ok := res.Err.(*runPanic); ok {
			panic(p.value)
		}
		if res.Err != nil && ctx.Err() != nil {
			s.handleAbandoned(w, r, plays, ctx.Err())
			return
		}
		if res.Err != nil {
			s.errorHandler.HandleAuditError(w, r, http.StatusInternalServerError, ErrTypeAuditFailed, AuditError{
				Error:   "Internal server error",
				Message: res.Err.Error(),
			}, res.Err)
			return
		}
		if res.Shared {
			s.logger.Debug("audit run shared",
				zap.String("request_id", middleware.GetReqID(ctx)),
				zap.Int("plays", plays))
		}
		s.writeReport(w, res.Val.([]byte), cacheMiss)
	}
}

// handleAbandoned answers a request whose own context ended while it waited
// on a shared run. The run itself keeps going for the other waiters.
func (s *Server) handleAbandoned(w http.ResponseWriter, r *http.Request, plays int, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		s.errorHandler.HandleAuditError(w, r, http.StatusGatewayTimeout, ErrTypeTimeout, AuditError{
			Error:   "Request timeout",
			Message: "The audit did not finish within the request timeout",
		}, err)
		return
	}
	s.logger.Info("client left before audit finished",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("plays", plays),
		zap.Error(err))
}

// runPanic carries a panic out of a shared run so the waiting request can
// re-raise it in its own goroutine.
type runPanic struct {
	value any
}

func (p *runPanic) Error() string { return fmt.Sprintf("audit run panicked: %v", p.value) }

// runShared runs one audit for every request waiting on key. It is bounded
// by the server's request timeout rather than by any single caller.
func (s *Server) runShared(ctx context.Context, key string, plays int) (body []byte, err error) {
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}
	defer func() {
		if rvr := recover(); rvr != nil {
			s.logger.Error("audit run panicked",
				zap.String("key", key),
				zap.Any("panic", rvr),
				zap.Stack("stack"))
			err = &runPanic{value: rvr}
		}
	}()
	return s.runAndCache(ctx, key, plays)
}

func (s *Server) runAndCache(ctx context.Context, key string, plays int) ([]byte, error) {
	report, err := s.auditor.RunAudit(ctx, plays)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveAudit(report)

	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	if s.opts.CacheTTL > 0 {
		if err := s.cache.Set(ctx, key, body, s.opts.CacheTTL); err != nil {
			s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return body, nil
}

// cacheGet treats backend errors as misses.
func (s *Server) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.opts.CacheTTL <= 0 {
		return nil, false
	}
	body, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		ok = false
	}
	result := "miss"
	if ok {
		result = "hit"
	}
	s.metrics.CacheRequests.WithLabelValues(result).Inc()
	return body, ok
}

func (s *Server) writeReport(w http.ResponseWriter, body []byte, cacheStatus string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.Header().Set(cacheHeader, cacheStatus)
	if s.opts.CacheTTL > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(s.opts.CacheTTL/time.Second)))
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("write report", zap.Error(err))
	}
}

// handleListGames lists the catalog with each game's scenario count.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	reg := s.auditor.Registry()
	defs := s.auditor.Catalog().Definitions()

	resp := GamesResponse{
		Games:         make([]GameInfo, 0, len(defs)),
		EngineVersion: EngineVersion,
	}
	for _, def := range defs {
		scenarios, err := reg.Generate(def.Key)
		if err != nil {
			s.errorHandler.HandleError(w, r, http.StatusInternalServerError, ErrTypeAuditFailed,
				fmt.Sprintf("generate scenarios for %s: %v", def.Key, err))
			return
		}
		resp.Games = append(resp.Games, GameInfo{
			Key:       def.Key,
			TargetRTP: def.TargetRTP,
			Scenarios: len(scenarios),
		})
		resp.TotalScenarios += len(scenarios)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// groupThousands formats n with comma separators.
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	out := s[:head]
	for i := head; i < len(s); i += 3 {
		out += "," + s[i:i+3]
	}
	return out
}
