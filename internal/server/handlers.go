package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skillbloom/internal/engine"
	"skillbloom/internal/generate"
	"skillbloom/internal/growth"
	"skillbloom/internal/roadmap"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error:   &apiError{Code: code, Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// respondDomainError maps engine and gateway errors onto HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	var notFound engine.NotFoundError
	if errors.As(err, &notFound) {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	var locked engine.LockedTaskError
	if errors.As(err, &locked) {
		respondError(w, http.StatusConflict, "task_locked", err.Error())
		return
	}
	var genErr *generate.Error
	if errors.As(err, &genErr) {
		switch genErr.Category {
		case generate.CategoryAuth:
			respondError(w, http.StatusUnauthorized, "auth", genErr.Error())
		case generate.CategoryRateLimit:
			respondError(w, http.StatusTooManyRequests, "rate_limited", genErr.Error())
		case generate.CategoryMalformed:
			respondError(w, http.StatusBadGateway, "malformed", genErr.Error())
		default:
			respondError(w, http.StatusBadGateway, "unknown", genErr.Error())
		}
		return
	}
	if errors.Is(err, roadmap.ErrNoTasks) {
		respondError(w, http.StatusBadRequest, "invalid_document", err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, "internal", err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "body must be {\"prompt\": \"...\"}")
		return
	}

	payload, err := s.gen.Generate(r.Context(), req.Prompt)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	rm, err := s.svc.CreateFromGeneration(r.Context(), payload)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rm)
}

func (s *Server) handleListRoadmaps(w http.ResponseWriter, r *http.Request) {
	roadmaps, err := s.svc.RoadmapRepo().ListAll(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	activeID, err := s.svc.UserRepo().ActiveRoadmapID(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"activeRoadmapId": activeID,
		"roadmaps":        roadmaps,
	})
}

func (s *Server) handleGetRoadmap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rm, err := s.svc.RoadmapRepo().Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if rm == nil {
		respondError(w, http.StatusNotFound, "not_found", "roadmap "+id+" not found")
		return
	}
	respondJSON(w, http.StatusOK, rm)
}

func (s *Server) handleDeleteRoadmap(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteRoadmap(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.SetActive(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "active"})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.ToggleTask(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "taskID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"task":      res.Task,
		"completed": res.NowCompleted,
		"ratio":     res.Ratio,
		"reward":    res.Reward,
	})
}

func (s *Server) handleGamification(w http.ResponseWriter, r *http.Request) {
	state, err := s.svc.GamificationState(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"totalXp":        state.TotalXP,
		"level":          state.Level(),
		"streakDays":     state.StreakDays,
		"lastActiveDate": state.LastActiveDate,
		"totalCompleted": state.TotalCompleted,
		"levelProgress":  engine.ProgressWithinLevel(state),
		"xpToNextLevel":  engine.XPToNextLevel(state),
	})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	info, err := s.svc.SceneFor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"variant": info.Descriptor.Variant,
		"family":  info.Descriptor.Family,
		"stage":   info.Stage.Index,
		"ratio":   info.Ratio,
		"scene":   info.Scene,
	})
}

func (s *Server) handleSceneSVG(w http.ResponseWriter, r *http.Request) {
	info, err := s.svc.SceneFor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, growth.RenderSVG(info.Scene)); err != nil {
		slog.Error("failed to write svg", "error", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.svc.ExportRoadmap(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="roadmap.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "unreadable body")
		return
	}
	rm, err := s.svc.ImportRoadmap(r.Context(), data)
	if err != nil {
		if errors.Is(err, roadmap.ErrNoTasks) {
			respondDomainError(w, err)
			return
		}
		respondError(w, http.StatusBadRequest, "invalid_document", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, rm)
}
