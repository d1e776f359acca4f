package api

import (
	"net/http"

	"finboard/importer"
	"finboard/realtime"
)

// Quarterly Record Handlers

// handleListQuarters returns the history of a company, most recent first
func (s *Server) handleListQuarters(w http.ResponseWriter, r *http.Request) {
	companyID := r.PathValue("id")
	if _, err := s.repo.GetCompany(companyID); err != nil {
		respondWithStoreError(w, "Failed to load company", err)
		return
	}

	records, err := s.repo.ListQuarters(companyID)
	if err != nil {
		respondWithStoreError(w, "Failed to load quarterly records", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":  records,
		"count": len(records),
	})
}

// handleCreateQuarter stores a manually entered quarter. A company can hold
// one record per quarter; a second one is rejected with 409.
func (s *Server) handleCreateQuarter(w http.ResponseWriter, r *http.Request) {
	companyID := r.PathValue("id")

	var req QuarterRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if _, err := s.repo.GetCompany(companyID); err != nil {
		respondWithStoreError(w, "Failed to load company", err)
		return
	}

	record := req.toModel("", companyID)
	if err := s.repo.CreateQuarter(record); err != nil {
		respondWithStoreError(w, "Failed to create quarterly record", err)
		return
	}

	s.publish(r, realtime.EventQuarterSaved, record)
	respondJSON(w, http.StatusCreated, record)
}

func (s *Server) handleUpdateQuarter(w http.ResponseWriter, r *http.Request) {
	var req QuarterRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	// company_id is taken from the stored record
	record := req.toModel(r.PathValue("id"), "")
	if err := s.repo.UpdateQuarter(record); err != nil {
		respondWithStoreError(w, "Failed to update quarterly record", err)
		return
	}
	if saved, err := s.repo.GetQuarter(record.ID); err == nil {
		record = saved
	}

	s.publish(r, realtime.EventQuarterSaved, record)
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteQuarter(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.repo.DeleteQuarter(id); err != nil {
		respondWithStoreError(w, "Failed to delete quarterly record", err)
		return
	}

	s.publish(r, realtime.EventQuarterDeleted, map[string]string{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

// handleImport pulls the latest quarter of a company from the market-data API
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if s.importer == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Import is not configured", nil)
		return
	}

	res := s.importer.Import(r.Context(), r.PathValue("id"))
	respondJSON(w, importStatusCode(res.Outcome), res)
}

// handleLastImport returns the remembered outcome of the last import, 204 when none is known
func (s *Server) handleLastImport(w http.ResponseWriter, r *http.Request) {
	companyID := r.PathValue("id")
	if _, err := s.repo.GetCompany(companyID); err != nil {
		respondWithStoreError(w, "Failed to load company", err)
		return
	}
	if s.status == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	status, err := s.status.Last(r.Context(), companyID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load import status", err)
		return
	}
	if status == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func importStatusCode(outcome importer.Outcome) int {
	switch outcome {
	case importer.OutcomeSuccess:
		return http.StatusCreated
	case importer.OutcomeDuplicate:
		return http.StatusConflict
	case importer.OutcomeNotFound:
		return http.StatusNotFound
	case importer.OutcomeExternalError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
