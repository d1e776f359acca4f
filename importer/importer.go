// Package importer pulls the latest quarter of a company from the market-data API
// and stores it as a quarterly record.
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finboard/brapi"
	"finboard/cache"
	"finboard/database"
	models "finboard/database/models_pkg"
	"finboard/realtime"

	"github.com/rs/zerolog/log"
)

// Outcome tags the result of an import
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeDuplicate        Outcome = "duplicate"
	OutcomeExternalError    Outcome = "external_error"
	OutcomePersistenceError Outcome = "persistence_error"
	OutcomeNotFound         Outcome = "not_found"
)

// Result is the tagged result of Service.Import.
// Record is the inserted record on success and the stored one on duplicate.
type Result struct {
	Outcome Outcome                    `json:"outcome"`
	Message string                     `json:"message"`
	Ticker  string                     `json:"ticker,omitempty"`
	Record  *models.FinancialIndicator `json:"record,omitempty"`
	Err     error                      `json:"-"`
}

// QuoteFetcher fetches a quote payload by ticker
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, ticker string) (*brapi.QuoteResponse, error)
}

// Store is the persistence used by the import pipeline
type Store interface {
	GetCompany(id string) (*models.Company, error)
	FindQuarter(companyID, quarter string) (*models.FinancialIndicator, error)
	CreateQuarter(record *models.FinancialIndicator) error
}

// EventPublisher notifies connected clients
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{})
}

// StatusRecorder remembers the last outcome per company
type StatusRecorder interface {
	Save(ctx context.Context, companyID string, status cache.ImportStatus) error
}

// Service runs the fetch, map, probe and insert pipeline for one company
type Service struct {
	store   Store
	fetcher QuoteFetcher
	events  EventPublisher
	status  StatusRecorder
}

// New creates an import service. events and status may be nil.
func New(store Store, fetcher QuoteFetcher, events EventPublisher, status StatusRecorder) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
		events:  events,
		status:  status,
	}
}

// Import fetches the latest quarter of a company and stores it unless the
// company already has a record for that quarter. Failures are reported in the
// result, never retried.
func (s *Service) Import(ctx context.Context, companyID string) Result {
	start := time.Now()
	res := s.run(ctx, companyID)

	importsTotal.WithLabelValues(string(res.Outcome)).Inc()
	importDuration.Observe(time.Since(start).Seconds())

	evt := log.Info()
	if res.Err != nil {
		evt = log.Warn().Err(res.Err)
	}
	evt.Str("company_id", companyID).
		Str("ticker", res.Ticker).
		Str("outcome", string(res.Outcome)).
		Dur("elapsed", time.Since(start)).
		Msg("📥 Quarter import finished")

	if s.status != nil && res.Outcome != OutcomeNotFound {
		status := cache.ImportStatus{
			Outcome:    string(res.Outcome),
			Message:    res.Message,
			ImportedAt: time.Now(),
		}
		if res.Record != nil {
			status.Quarter = res.Record.Quarter
		}
		if err := s.status.Save(ctx, companyID, status); err != nil {
			log.Warn().Err(err).Str("company_id", companyID).Msg("Failed to remember import status")
		}
	}

	if res.Outcome == OutcomeSuccess && s.events != nil {
		s.events.Publish(ctx, realtime.EventQuarterImported, res.Record)
	}
	return res
}

func (s *Service) run(ctx context.Context, companyID string) Result {
	company, err := s.store.GetCompany(companyID)
	if err != nil {
		if database.IsNotFound(err) {
			return Result{Outcome: OutcomeNotFound, Message: "Nenhuma empresa selecionada.", Err: err}
		}
		return Result{Outcome: OutcomePersistenceError, Message: "Erro ao carregar empresa do banco de dados.", Err: err}
	}
	if company == nil {
		return Result{
			Outcome: OutcomeNotFound,
			Message: "Nenhuma empresa selecionada.",
			Err:     database.NewNotFoundErrorWithID("company", companyID),
		}
	}

	res := Result{Ticker: company.Ticker}

	quote, err := s.fetcher.FetchQuote(ctx, company.Ticker)
	if err != nil {
		res.Outcome = OutcomeExternalError
		res.Message = externalMessage(err)
		res.Err = err
		return res
	}

	record, err := brapi.Map(quote, company.ID)
	if err != nil {
		res.Outcome = OutcomeExternalError
		res.Message = externalMessage(err)
		res.Err = err
		return res
	}

	existing, err := s.store.FindQuarter(company.ID, record.Quarter)
	if err != nil {
		res.Outcome = OutcomePersistenceError
		res.Message = "Erro ao verificar dados existentes."
		res.Err = err
		return res
	}
	if existing != nil {
		return duplicateResult(res, existing)
	}

	if err := s.store.CreateQuarter(record); err != nil {
		if dup, ok := database.AsDuplicate(err); ok {
			return duplicateResult(res, dup.Existing)
		}
		res.Outcome = OutcomePersistenceError
		res.Message = "Erro ao salvar dados do trimestre."
		res.Err = err
		return res
	}

	res.Outcome = OutcomeSuccess
	res.Message = fmt.Sprintf("Dados de balanço importados com sucesso para %s (%s).", company.Nome, record.Quarter)
	res.Record = record
	return res
}

func duplicateResult(res Result, existing *models.FinancialIndicator) Result {
	res.Outcome = OutcomeDuplicate
	res.Message = "Os dados para este trimestre já foram importados."
	res.Record = existing
	if existing != nil {
		res.Err = &database.DuplicateError{CompanyID: existing.CompanyID, Quarter: existing.Quarter, Existing: existing}
	}
	return res
}

func externalMessage(err error) string {
	var fe *brapi.FetchError
	switch {
	case errors.Is(err, brapi.ErrNoResult):
		return "Dados não encontrados na API."
	case errors.Is(err, brapi.ErrNoQuarterlyData):
		return "Nenhum dado trimestral encontrado na API."
	case errors.As(err, &fe) && fe.Kind == brapi.KindStatus:
		return fmt.Sprintf("Erro na API: %d", fe.StatusCode)
	case errors.As(err, &fe) && fe.Kind == brapi.KindPayload:
		return "Resposta inválida da API."
	default:
		return "Falha ao acessar a API externa."
	}
}
