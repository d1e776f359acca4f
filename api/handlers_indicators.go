package api

import (
	"net/http"

	"finboard/helpers"
	"finboard/indicators"
	"finboard/realtime"
)

// Indicator Definition Handlers

func (s *Server) handleListDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := s.repo.ListDefinitions()
	if err != nil {
		respondWithStoreError(w, "Failed to load indicator definitions", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":  defs,
		"count": len(defs),
	})
}

// handleCreateDefinition stores a definition. field_name is derived from the
// name when omitted, and sql_column is always generated from field and unit.
func (s *Server) handleCreateDefinition(w http.ResponseWriter, r *http.Request) {
	var req DefinitionRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	def := req.toModel("")
	if def.FieldName == "" {
		respondWithError(w, http.StatusBadRequest, "name: no usable characters for a field name", nil)
		return
	}
	if err := s.repo.CreateDefinition(def); err != nil {
		respondWithStoreError(w, "Failed to create indicator definition", err)
		return
	}

	s.publish(r, realtime.EventDefinitionSaved, def)
	respondJSON(w, http.StatusCreated, def)
}

func (s *Server) handleUpdateDefinition(w http.ResponseWriter, r *http.Request) {
	var req DefinitionRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	def := req.toModel(r.PathValue("id"))
	if def.FieldName == "" {
		respondWithError(w, http.StatusBadRequest, "name: no usable characters for a field name", nil)
		return
	}
	if err := s.repo.UpdateDefinition(def); err != nil {
		respondWithStoreError(w, "Failed to update indicator definition", err)
		return
	}
	if saved, err := s.repo.GetDefinition(def.ID); err == nil {
		def = saved
	}

	s.publish(r, realtime.EventDefinitionSaved, def)
	respondJSON(w, http.StatusOK, def)
}

func (s *Server) handleDeleteDefinition(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.repo.DeleteDefinition(id); err != nil {
		respondWithStoreError(w, "Failed to delete indicator definition", err)
		return
	}

	s.publish(r, realtime.EventDefinitionDeleted, map[string]string{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

// handleDefinitionSQL returns the ALTER TABLE statement that adds the column of a definition.
// The statement is only generated, never executed.
func (s *Server) handleDefinitionSQL(w http.ResponseWriter, r *http.Request) {
	def, err := s.repo.GetDefinition(r.PathValue("id"))
	if err != nil {
		respondWithStoreError(w, "Failed to load indicator definition", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"field_name": def.FieldName,
		"sql_column": def.SQLColumn,
		"statement":  helpers.AlterTableStatement(def.SQLColumn),
	})
}

// handleMetricCatalog returns the metric registry grouped by dashboard section
func (s *Server) handleMetricCatalog(w http.ResponseWriter, r *http.Request) {
	type group struct {
		Category indicators.Category `json:"category"`
		Label    string              `json:"label"`
		Metrics  []indicators.Metric `json:"metrics"`
	}

	groups := make([]group, 0, len(indicators.Categories()))
	for _, c := range indicators.Categories() {
		groups = append(groups, group{
			Category: c,
			Label:    indicators.CategoryLabel(c),
			Metrics:  indicators.ByCategory(c),
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":  groups,
		"count": len(indicators.All()),
	})
}
