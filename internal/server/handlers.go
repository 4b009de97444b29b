package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/pipeline"
)

type analyzeRequest struct {
	Text string `json:"text" validate:"required_without=URL"`
	URL  string `json:"url,omitempty" validate:"omitempty,url"`
}

type selectRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type specRequest struct {
	IDs            []string                       `json:"ids,omitempty"`
	Customizations map[string]model.Customization `json:"customizations,omitempty"`
}

type acceptRequest struct {
	Markers []model.Marker     `json:"markers,omitempty"`
	Design  *model.DesignHints `json:"design,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"state":  s.orch.State().String(),
	})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	var (
		set *model.GeoTargetSet
		err error
	)
	switch {
	case req.Text != "":
		set, err = s.orch.ProcessText(ctx, req.Text, req.URL)
	case s.fetcher == nil:
		s.respondError(w, http.StatusBadRequest, errors.New("URL fetching is disabled; send the article text"))
		return
	default:
		set, err = s.orch.ProcessURL(ctx, s.fetcher, req.URL)
	}
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}
	s.respondJSON(w, http.StatusOK, set)
}

func (s *Server) session(w http.ResponseWriter, _ *http.Request) {
	set, err := s.orch.Session()
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}
	s.respondJSON(w, http.StatusOK, set)
}

func (s *Server) selectTargets(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.orch.Select(req.IDs); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		s.respondError(w, status, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) generateSpec(w http.ResponseWriter, r *http.Request) {
	var req specRequest
	if r.ContentLength != 0 && !s.decode(w, r, &req) {
		return
	}
	spec, err := s.orch.GenerateMapSpec(req.IDs, req.Customizations)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		s.respondError(w, status, err)
		return
	}
	s.respondJSON(w, http.StatusOK, spec)
}

func (s *Server) exportSpec(w http.ResponseWriter, _ *http.Request) {
	data, err := s.orch.ExportSpec()
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) importSpec(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		s.respondError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	if err := s.orch.ImportSpec(data); err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) accept(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if r.ContentLength != 0 && !s.decode(w, r, &req) {
		return
	}
	rec, err := s.orch.Accept(req.Markers, req.Design)
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": rec.ID})
}

func (s *Server) reset(w http.ResponseWriter, _ *http.Request) {
	s.orch.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// decode reads and checks a JSON body, answering 400 itself on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("%w: invalid request body: %v", model.ErrSchemaInvalid, err))
		return false
	}
	if err := s.requests.Struct(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", model.ErrSchemaInvalid, err))
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrSchemaInvalid):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrDuplicateRequest), errors.Is(err, model.ErrNoActiveSession):
		return http.StatusConflict
	case errors.Is(err, model.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, model.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, model.ErrServiceUnavailable), errors.Is(err, model.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, pipeline.ErrBlockedByRobots):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	s.respondJSON(w, status, errorResponse{
		Error:   err.Error(),
		Message: pipeline.UserMessage(err),
		Code:    status,
	})
}
