package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finboard/cache"
	"finboard/database"
	models "finboard/database/models_pkg"
	"finboard/importer"
	"finboard/realtime"
)

func floatPtr(v float64) *float64 {
	return &v
}

// memStore is an in-memory Store with the facade's error semantics
type memStore struct {
	companies map[string]*database.Company
	quarters  map[string]*database.FinancialIndicator
	defs      map[string]*database.IndicatorDefinition
	nextID    int
	failList  bool
}

func newMemStore() *memStore {
	return &memStore{
		companies: map[string]*database.Company{},
		quarters:  map[string]*database.FinancialIndicator{},
		defs:      map[string]*database.IndicatorDefinition{},
	}
}

func (m *memStore) id() string {
	m.nextID++
	return fmt.Sprintf("id-%d", m.nextID)
}

func (m *memStore) ListCompanies(search string) ([]database.Company, error) {
	if m.failList {
		return nil, &database.DBError{Operation: "ListCompanies", Err: errors.New("connection refused")}
	}
	var out []database.Company
	for _, c := range m.companies {
		if search == "" || strings.Contains(strings.ToLower(c.Nome), strings.ToLower(search)) ||
			strings.Contains(strings.ToLower(c.Ticker), strings.ToLower(search)) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memStore) GetCompany(id string) (*database.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return nil, database.NewNotFoundErrorWithID("company", id)
	}
	return c, nil
}

func (m *memStore) CreateCompany(c *database.Company) error {
	c.ID = m.id()
	m.companies[c.ID] = c
	return nil
}

func (m *memStore) UpdateCompany(c *database.Company) error {
	if _, ok := m.companies[c.ID]; !ok {
		return database.NewNotFoundErrorWithID("company", c.ID)
	}
	m.companies[c.ID] = c
	return nil
}

func (m *memStore) DeleteCompany(id string) error {
	if _, ok := m.companies[id]; !ok {
		return database.NewNotFoundErrorWithID("company", id)
	}
	delete(m.companies, id)
	return nil
}

func (m *memStore) GetCoverage() ([]database.CompanyCoverage, error) {
	var out []database.CompanyCoverage
	for _, c := range m.companies {
		out = append(out, database.CompanyCoverage{CompanyID: c.ID, Nome: c.Nome, Ticker: c.Ticker})
	}
	return out, nil
}

func (m *memStore) ListQuarters(companyID string) ([]database.FinancialIndicator, error) {
	var out []database.FinancialIndicator
	for _, q := range m.quarters {
		if q.CompanyID == companyID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (m *memStore) GetQuarter(id string) (*database.FinancialIndicator, error) {
	q, ok := m.quarters[id]
	if !ok {
		return nil, database.NewNotFoundErrorWithID("quarter", id)
	}
	return q, nil
}

func (m *memStore) CreateQuarter(record *database.FinancialIndicator) error {
	record.Quarter = quarterKey(record)
	for _, q := range m.quarters {
		if q.CompanyID == record.CompanyID && q.Quarter == record.Quarter {
			return &database.DuplicateError{CompanyID: q.CompanyID, Quarter: q.Quarter, Existing: q}
		}
	}
	record.ID = m.id()
	m.quarters[record.ID] = record
	return nil
}

func (m *memStore) UpdateQuarter(record *database.FinancialIndicator) error {
	current, ok := m.quarters[record.ID]
	if !ok {
		return database.NewNotFoundErrorWithID("quarter", record.ID)
	}
	record.CompanyID = current.CompanyID
	record.Quarter = quarterKey(record)
	m.quarters[record.ID] = record
	return nil
}

func (m *memStore) DeleteQuarter(id string) error {
	if _, ok := m.quarters[id]; !ok {
		return database.NewNotFoundErrorWithID("quarter", id)
	}
	delete(m.quarters, id)
	return nil
}

func (m *memStore) ListDefinitions() ([]database.IndicatorDefinition, error) {
	var out []database.IndicatorDefinition
	for _, d := range m.defs {
		out = append(out, *d)
	}
	return out, nil
}

func (m *memStore) GetDefinition(id string) (*database.IndicatorDefinition, error) {
	d, ok := m.defs[id]
	if !ok {
		return nil, database.NewNotFoundErrorWithID("indicator definition", id)
	}
	return d, nil
}

func (m *memStore) CreateDefinition(d *database.IndicatorDefinition) error {
	d.ID = m.id()
	m.defs[d.ID] = d
	return nil
}

func (m *memStore) UpdateDefinition(d *database.IndicatorDefinition) error {
	if _, ok := m.defs[d.ID]; !ok {
		return database.NewNotFoundErrorWithID("indicator definition", d.ID)
	}
	m.defs[d.ID] = d
	return nil
}

func (m *memStore) DeleteDefinition(id string) error {
	if _, ok := m.defs[id]; !ok {
		return database.NewNotFoundErrorWithID("indicator definition", id)
	}
	delete(m.defs, id)
	return nil
}

func quarterKey(r *database.FinancialIndicator) string {
	return models.QuarterKey(r.Year, r.QuarterNumber)
}

type fakeEvents struct {
	events []string
}

func (f *fakeEvents) Publish(ctx context.Context, event string, payload interface{}) {
	f.events = append(f.events, event)
}

type fakeImporter struct {
	result importer.Result
}

func (f *fakeImporter) Import(ctx context.Context, companyID string) importer.Result {
	return f.result
}

type fakeStatus struct {
	byCompany map[string]*cache.ImportStatus
	forgotten []string
}

func (f *fakeStatus) Last(ctx context.Context, companyID string) (*cache.ImportStatus, error) {
	return f.byCompany[companyID], nil
}

func (f *fakeStatus) Forget(ctx context.Context, companyID string) error {
	delete(f.byCompany, companyID)
	f.forgotten = append(f.forgotten, companyID)
	return nil
}

func newTestServer(store *memStore, imp Importer, events *fakeEvents) http.Handler {
	if events == nil {
		events = &fakeEvents{}
	}
	return NewServer(store, imp, events, &fakeStatus{}, realtime.NewBroker(), nil).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
}

func TestCompanyEndpoints(t *testing.T) {
	store := newMemStore()
	events := &fakeEvents{}
	h := newTestServer(store, nil, events)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"create", http.MethodPost, "/api/companies", `{"nome":"Petrobras","ticker":"petr4","categoria":"Industria"}`, http.StatusCreated},
		{"missing nome", http.MethodPost, "/api/companies", `{"ticker":"VALE3"}`, http.StatusBadRequest},
		{"bad categoria", http.MethodPost, "/api/companies", `{"nome":"Vale","ticker":"VALE3","categoria":"Varejo"}`, http.StatusBadRequest},
		{"bad link", http.MethodPost, "/api/companies", `{"nome":"Vale","ticker":"VALE3","link_ri":"not a url"}`, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/companies", `{"nome":`, http.StatusBadRequest},
		{"get unknown", http.MethodGet, "/api/companies/nope", "", http.StatusNotFound},
		{"update unknown", http.MethodPut, "/api/companies/nope", `{"nome":"X","ticker":"X"}`, http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/api/companies/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}

	if len(store.companies) != 1 {
		t.Fatalf("expected 1 company, got %d", len(store.companies))
	}
	var created *database.Company
	for _, c := range store.companies {
		created = c
	}
	if created.Ticker != "PETR4" {
		t.Errorf("ticker should be upper-cased, got %s", created.Ticker)
	}
	if len(events.events) != 1 || events.events[0] != realtime.EventCompanySaved {
		t.Errorf("expected one company.saved event, got %v", events.events)
	}

	rec := do(t, h, http.MethodGet, "/api/companies?q=petro", "")
	var list struct {
		Count int `json:"count"`
	}
	decode(t, rec, &list)
	if list.Count != 1 {
		t.Errorf("search should find Petrobras, got %d", list.Count)
	}

	rec = do(t, h, http.MethodDelete, "/api/companies/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestErrorResponseIsJSON(t *testing.T) {
	store := newMemStore()
	store.failList = true
	h := newTestServer(store, nil, nil)

	rec := do(t, h, http.MethodGet, "/api/companies", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["error"] != "Failed to load companies" {
		t.Errorf("internal error should not leak, got %q", body["error"])
	}
}

func TestCreateQuarterRejectsDuplicate(t *testing.T) {
	store := newMemStore()
	store.companies["c1"] = &database.Company{ID: "c1", Nome: "Petrobras", Ticker: "PETR4"}
	events := &fakeEvents{}
	h := newTestServer(store, nil, events)

	body := `{"year":2024,"quarter_number":1,"values":{"capital_giro":300,"liquidez_corrente":2.5}}`
	rec := do(t, h, http.MethodPost, "/api/companies/c1/quarters", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created database.FinancialIndicator
	decode(t, rec, &created)
	if created.Quarter != "2024TRI1" || created.CapitalGiro == nil || *created.CapitalGiro != 300 {
		t.Errorf("unexpected record %+v", created)
	}

	rec = do(t, h, http.MethodPost, "/api/companies/c1/quarters", `{"year":2024,"quarter_number":1,"values":{"capital_giro":1}}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	stored := store.quarters[created.ID]
	if *stored.CapitalGiro != 300 {
		t.Errorf("existing record was mutated: %v", *stored.CapitalGiro)
	}
	if len(events.events) != 1 {
		t.Errorf("only the first create should publish, got %v", events.events)
	}
}

func TestQuarterValidation(t *testing.T) {
	store := newMemStore()
	store.companies["c1"] = &database.Company{ID: "c1", Nome: "Petrobras", Ticker: "PETR4"}
	h := newTestServer(store, nil, nil)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"quarter out of range", "/api/companies/c1/quarters", `{"year":2024,"quarter_number":5}`, http.StatusBadRequest},
		{"missing year", "/api/companies/c1/quarters", `{"quarter_number":1}`, http.StatusBadRequest},
		{"unknown metric", "/api/companies/c1/quarters", `{"year":2024,"quarter_number":1,"values":{"lucro_magico":1}}`, http.StatusBadRequest},
		{"unknown company", "/api/companies/zz/quarters", `{"year":2024,"quarter_number":1}`, http.StatusNotFound},
		{"null values are missing", "/api/companies/c1/quarters", `{"year":2023,"quarter_number":4,"values":{"roe":null}}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestImportStatusCodes(t *testing.T) {
	tests := []struct {
		outcome importer.Outcome
		want    int
	}{
		{importer.OutcomeSuccess, http.StatusCreated},
		{importer.OutcomeDuplicate, http.StatusConflict},
		{importer.OutcomeNotFound, http.StatusNotFound},
		{importer.OutcomeExternalError, http.StatusBadGateway},
		{importer.OutcomePersistenceError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			imp := &fakeImporter{result: importer.Result{Outcome: tt.outcome, Message: "msg"}}
			h := newTestServer(newMemStore(), imp, nil)

			rec := do(t, h, http.MethodPost, "/api/companies/c1/import", "")
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
			var body map[string]interface{}
			decode(t, rec, &body)
			if body["outcome"] != string(tt.outcome) {
				t.Errorf("expected outcome %s in body, got %v", tt.outcome, body["outcome"])
			}
		})
	}
}

func TestImportNotConfigured(t *testing.T) {
	store := newMemStore()
	store.companies["c1"] = &database.Company{ID: "c1", Nome: "Petrobras", Ticker: "PETR4"}
	h := NewServer(store, nil, nil, nil, nil, nil).Handler()
	if rec := do(t, h, http.MethodPost, "/api/companies/c1/import", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/companies/c1/import", ""); rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 without a status store, got %d", rec.Code)
	}
}

func TestLastImportFollowsCompanyLifecycle(t *testing.T) {
	store := newMemStore()
	store.companies["c1"] = &database.Company{ID: "c1", Nome: "Petrobras", Ticker: "PETR4"}
	status := &fakeStatus{byCompany: map[string]*cache.ImportStatus{
		"c1": {Outcome: string(importer.OutcomeSuccess), Message: "ok", Quarter: "2024TRI1"},
	}}
	h := NewServer(store, nil, &fakeEvents{}, status, nil, nil).Handler()

	rec := do(t, h, http.MethodGet, "/api/companies/c1/import", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got cache.ImportStatus
	decode(t, rec, &got)
	if got.Quarter != "2024TRI1" {
		t.Errorf("expected quarter 2024TRI1, got %q", got.Quarter)
	}

	if rec := do(t, h, http.MethodDelete, "/api/companies/c1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(status.forgotten) != 1 || status.forgotten[0] != "c1" {
		t.Errorf("expected the import status of c1 to be dropped, got %v", status.forgotten)
	}
	if rec := do(t, h, http.MethodGet, "/api/companies/c1/import", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a deleted company, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/companies/unknown/import", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown company, got %d", rec.Code)
	}
}

func seedHistory(store *memStore) {
	store.companies["c1"] = &database.Company{ID: "c1", Nome: "Petrobras", Ticker: "PETR4"}
	add := func(id string, year, q int, receitas *float64) {
		rec := &database.FinancialIndicator{ID: id, CompanyID: "c1", Year: year, QuarterNumber: q, ReceitasBensServicos: receitas}
		rec.Quarter = quarterKey(rec)
		store.quarters[id] = rec
	}
	add("q1", 2023, 1, floatPtr(400_000_000))
	add("q2", 2023, 4, floatPtr(500_000_000))
	add("q3", 2023, 3, nil)
	add("q4", 2024, 1, floatPtr(600_000_000))
}

func TestDashboard(t *testing.T) {
	store := newMemStore()
	seedHistory(store)
	h := newTestServer(store, nil, nil)

	rec := do(t, h, http.MethodGet, "/api/companies/c1/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dashboardResponse
	decode(t, rec, &resp)

	if resp.Quarter != "2024TRI1" {
		t.Errorf("expected latest quarter 2024TRI1, got %s", resp.Quarter)
	}
	if len(resp.Quarters) != 4 || resp.Quarters[0] != "2024TRI1" || resp.Quarters[3] != "2023TRI1" {
		t.Errorf("quarters should be most recent first, got %v", resp.Quarters)
	}
	if len(resp.Summary) == 0 || resp.Summary[0].Formatted != "R$ 600,0 milhões" {
		t.Errorf("unexpected summary %+v", resp.Summary)
	}
	if len(resp.Sections) != 6 {
		t.Fatalf("expected 6 sections, got %d", len(resp.Sections))
	}

	revenue := resp.Sections[0]
	if len(revenue.Cards) != 6 {
		t.Fatalf("expected 6 revenue cards, got %d", len(revenue.Cards))
	}
	card := revenue.Cards[0]
	if card.Formatted != "R$ 600.000.000" {
		t.Errorf("unexpected formatted value %q", card.Formatted)
	}
	if card.Comparison == nil {
		t.Fatal("expected a comparison for receitas")
	}
	cmp := card.Comparison
	if cmp.PreviousQuarterLabel != "500.0 milhões" || cmp.SameQuarterLastYearLabel != "400.0 milhões" {
		t.Errorf("unexpected reference labels %q / %q", cmp.PreviousQuarterLabel, cmp.SameQuarterLastYearLabel)
	}
	if cmp.QuarterChangeLabel != "+20.0%" || cmp.YearChangeLabel != "+50.0%" {
		t.Errorf("unexpected change labels %q / %q", cmp.QuarterChangeLabel, cmp.YearChangeLabel)
	}
	if cmp.QuarterTrend != "up" || cmp.YearTrend != "up" {
		t.Errorf("unexpected trends %s / %s", cmp.QuarterTrend, cmp.YearTrend)
	}

	// a metric the quarter did not report has no comparison
	if revenue.Cards[1].Comparison != nil || revenue.Cards[1].Formatted != "N/A" {
		t.Errorf("missing metric should render N/A without comparison, got %+v", revenue.Cards[1])
	}
}

func TestDashboardSelectedQuarter(t *testing.T) {
	store := newMemStore()
	seedHistory(store)
	h := newTestServer(store, nil, nil)

	rec := do(t, h, http.MethodGet, "/api/companies/c1/dashboard?quarter=2023TRI4", "")
	var resp dashboardResponse
	decode(t, rec, &resp)
	if resp.Quarter != "2023TRI4" {
		t.Errorf("expected 2023TRI4, got %s", resp.Quarter)
	}
	// 2023TRI3 did not report receitas, so there is no quarter change
	cmp := resp.Sections[0].Cards[0].Comparison
	if cmp == nil || cmp.QuarterChange != nil || cmp.QuarterChangeLabel != "N/A" || cmp.QuarterTrend != "neutral" {
		t.Errorf("unexpected comparison %+v", cmp)
	}

	if rec := do(t, h, http.MethodGet, "/api/companies/c1/dashboard?quarter=1999TRI1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown quarter, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/companies/zz/dashboard", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown company, got %d", rec.Code)
	}
}

func TestSeries(t *testing.T) {
	store := newMemStore()
	seedHistory(store)
	h := newTestServer(store, nil, nil)

	rec := do(t, h, http.MethodGet, "/api/companies/c1/series/receitas_bens_servicos", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Points []struct {
			Quarter   string  `json:"quarter"`
			Value     float64 `json:"value"`
			Label     string  `json:"label"`
			AxisLabel string  `json:"axis_label"`
		} `json:"points"`
	}
	decode(t, rec, &resp)

	if len(resp.Points) != 3 {
		t.Fatalf("expected 3 points (nil skipped), got %d", len(resp.Points))
	}
	if resp.Points[0].Quarter != "2023TRI1" || resp.Points[2].Quarter != "2024TRI1" {
		t.Errorf("points should be chronological, got %+v", resp.Points)
	}
	if resp.Points[2].AxisLabel != "600.0M" {
		t.Errorf("unexpected axis label %q", resp.Points[2].AxisLabel)
	}

	if rec := do(t, h, http.MethodGet, "/api/companies/c1/series/lucro_magico", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown metric, got %d", rec.Code)
	}
}

func TestIndicatorDefinitions(t *testing.T) {
	store := newMemStore()
	events := &fakeEvents{}
	h := newTestServer(store, nil, events)

	rec := do(t, h, http.MethodPost, "/api/indicators", `{"name":"Margem Líquida %","category":"profitability","unit":"percentage"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var def database.IndicatorDefinition
	decode(t, rec, &def)
	if def.FieldName != "margem_liquida" {
		t.Errorf("expected derived field name margem_liquida, got %s", def.FieldName)
	}
	if def.SQLColumn != "margem_liquida DECIMAL(10,4)" {
		t.Errorf("unexpected sql column %q", def.SQLColumn)
	}

	rec = do(t, h, http.MethodGet, "/api/indicators/"+def.ID+"/sql", "")
	var sql map[string]string
	decode(t, rec, &sql)
	if sql["statement"] != "ALTER TABLE financial_indicators ADD COLUMN margem_liquida DECIMAL(10,4);" {
		t.Errorf("unexpected statement %q", sql["statement"])
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"bad unit", `{"name":"X","category":"revenue","unit":"euros"}`, http.StatusBadRequest},
		{"bad category", `{"name":"X","category":"misc","unit":"ratio"}`, http.StatusBadRequest},
		{"registry category", `{"name":"Fluxo Livre","category":"cash_flow","unit":"currency"}`, http.StatusCreated},
		{"unit is case sensitive", `{"name":"X","category":"revenue","unit":"Ratio"}`, http.StatusBadRequest},
		{"no usable name", `{"name":"%%%","category":"revenue","unit":"ratio"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fresh := newTestServer(newMemStore(), nil, nil)
			if rec := do(t, fresh, http.MethodPost, "/api/indicators", tt.body); rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}

	if rec := do(t, h, http.MethodDelete, "/api/indicators/"+def.ID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/indicators/"+def.ID+"/sql", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
	want := []string{realtime.EventDefinitionSaved, realtime.EventDefinitionDeleted}
	if len(events.events) != 2 || events.events[0] != want[0] || events.events[1] != want[1] {
		t.Errorf("expected %v, got %v", want, events.events)
	}
}

func TestMetricCatalogAndHealth(t *testing.T) {
	h := newTestServer(newMemStore(), nil, nil)

	rec := do(t, h, http.MethodGet, "/api/metrics/catalog", "")
	var catalog struct {
		Data  []json.RawMessage `json:"data"`
		Count int               `json:"count"`
	}
	decode(t, rec, &catalog)
	if len(catalog.Data) != 6 || catalog.Count != 24 {
		t.Errorf("expected 6 groups and 24 metrics, got %d / %d", len(catalog.Data), catalog.Count)
	}

	if rec := do(t, h, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodOptions, "/api/companies", ""); rec.Code != http.StatusOK {
		t.Errorf("expected preflight 200, got %d", rec.Code)
	}
}
