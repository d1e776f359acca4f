package api

import (
	"net/http"
	"strings"

	"finboard/realtime"

	"github.com/rs/zerolog/log"
)

// Company Handlers

// handleListCompanies returns every company ordered by name, filtered by ?q= on name or ticker
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("q"))

	companies, err := s.repo.ListCompanies(search)
	if err != nil {
		respondWithStoreError(w, "Failed to load companies", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":  companies,
		"count": len(companies),
	})
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.repo.GetCompany(r.PathValue("id"))
	if err != nil {
		respondWithStoreError(w, "Failed to load company", err)
		return
	}
	respondJSON(w, http.StatusOK, company)
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CompanyRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	company := req.toModel("")
	if err := s.repo.CreateCompany(company); err != nil {
		respondWithStoreError(w, "Failed to create company", err)
		return
	}

	s.publish(r, realtime.EventCompanySaved, company)
	respondJSON(w, http.StatusCreated, company)
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req CompanyRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	company := req.toModel(r.PathValue("id")) // Ensure ID matches path
	if err := s.repo.UpdateCompany(company); err != nil {
		respondWithStoreError(w, "Failed to update company", err)
		return
	}
	if saved, err := s.repo.GetCompany(company.ID); err == nil {
		company = saved
	}

	s.publish(r, realtime.EventCompanySaved, company)
	respondJSON(w, http.StatusOK, company)
}

// handleDeleteCompany removes a company together with its quarterly records
func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.repo.DeleteCompany(id); err != nil {
		respondWithStoreError(w, "Failed to delete company", err)
		return
	}
	if s.status != nil {
		if err := s.status.Forget(r.Context(), id); err != nil {
			log.Warn().Err(err).Str("company_id", id).Msg("⚠️ Failed to forget import status")
		}
	}

	s.publish(r, realtime.EventCompanyDeleted, map[string]string{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

// handleGetCoverage returns, per company, how many quarters are stored and their range
func (s *Server) handleGetCoverage(w http.ResponseWriter, r *http.Request) {
	coverage, err := s.repo.GetCoverage()
	if err != nil {
		respondWithStoreError(w, "Failed to load coverage", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":  coverage,
		"count": len(coverage),
	})
}
