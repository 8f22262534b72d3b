package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/job-screening/internal/ingestion"
	"github.com/jonathan/job-screening/internal/report"
	"github.com/jonathan/job-screening/internal/types"
)

const (
	maxJSONBytes = 1 << 20
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// JobResponse is returned by POST /jobs.
type JobResponse struct {
	Job    *types.Job         `json:"job"`
	Status types.ResultStatus `json:"status"`
}

// CandidateResponse is returned by POST /candidates.
type CandidateResponse struct {
	Candidate *types.Candidate   `json:"candidate"`
	Status    types.ResultStatus `json:"status"`
}

// MatchesResponse lists matches, best first.
type MatchesResponse struct {
	Matches []types.Match `json:"matches"`
	Count   int           `json:"count"`
}

type validatable interface {
	Validate() error
}

// decodeJSON decodes a size-limited JSON body into v and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v validatable) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &errBadRequest{Message: "invalid JSON body: " + err.Error()}
	}
	return v.Validate()
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &errBadRequest{Message: fmt.Sprintf("invalid id %q", r.PathValue("id"))}
	}
	return id, nil
}

func matchesResponse(matches []types.Match) MatchesResponse {
	if matches == nil {
		matches = []types.Match{}
	}
	return MatchesResponse{Matches: matches, Count: len(matches)}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	var (
		job *types.Job
		err error
	)
	if req.URL != "" {
		job, err = s.svc.AnalyzeJobURL(r.Context(), req.URL)
	} else {
		job, err = s.svc.AnalyzeJob(r.Context(), req.Description)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, JobResponse{Job: job, Status: job.ExtractionStatus})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	job, err := s.svc.GetJob(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleListJobMatches(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	matches, err := s.svc.ListJobMatches(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, matchesResponse(matches))
}

// handleExportJobMatches streams the job's ranked matches as an XLSX workbook.
func (s *Server) handleExportJobMatches(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rep, err := s.svc.JobReport(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, rep); err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": fmt.Sprintf("job-%s-matches.xlsx", id)}))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, &buf)
}

// handleAnalyzeCandidate accepts a multipart "resume" upload or a JSON body with the résumé text.
func (s *Server) handleAnalyzeCandidate(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var text, sourceFile string
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxUploadBytes+maxJSONBytes)
		file, header, err := r.FormFile("resume")
		if err != nil {
			s.fail(w, r, &errBadRequest{Message: "missing resume file: " + err.Error()})
			return
		}
		defer func() {
			_ = file.Close()
		}()

		if !ingestion.Supported(header.Filename) {
			s.fail(w, r, &errBadRequest{Message: fmt.Sprintf("unsupported file type: %s", header.Filename)})
			return
		}
		text = ingestion.ExtractUpload(header.Filename, file, s.logger)
		if text == "" {
			s.fail(w, r, &errBadRequest{Message: "no text could be extracted from " + header.Filename})
			return
		}
		sourceFile = header.Filename
	} else {
		var req types.AnalyzeCandidateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.fail(w, r, err)
			return
		}
		text, sourceFile = req.Text, req.SourceFile
	}

	c, err := s.svc.AnalyzeCandidate(r.Context(), text, sourceFile)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, CandidateResponse{Candidate: c, Status: c.ExtractionStatus})
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := s.svc.GetCandidate(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, c)
}

func (s *Server) handleListCandidateMatches(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	matches, err := s.svc.ListCandidateMatches(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, matchesResponse(matches))
}

func (s *Server) handleMatchCandidate(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	outcome, err := s.svc.MatchCandidate(r.Context(), req.JobID, req.CandidateID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, outcome)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	m, err := s.svc.GetMatch(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, m)
}

func (s *Server) handleUpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req types.MatchStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	m, err := s.svc.UpdateMatchStatus(r.Context(), id, req.Status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, m)
}

func (s *Server) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	iv, err := s.svc.ScheduleInterview(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, iv)
}

func (s *Server) handleGetMatchInterview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	iv, err := s.svc.GetMatchInterview(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, iv)
}

func (s *Server) handleUpdateInterviewStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req types.InterviewStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	iv, err := s.svc.UpdateInterviewStatus(r.Context(), id, req.Status, req.Feedback)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, iv)
}
