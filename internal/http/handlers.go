package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/product-scanner-simulator/internal/config"
	httpopenapi "github.com/fairyhunter13/product-scanner-simulator/internal/http/openapi"
	"github.com/fairyhunter13/product-scanner-simulator/internal/idfile"
	"github.com/fairyhunter13/product-scanner-simulator/internal/model"
	"github.com/fairyhunter13/product-scanner-simulator/internal/obs"
	"github.com/fairyhunter13/product-scanner-simulator/internal/scan"
	"github.com/fairyhunter13/product-scanner-simulator/internal/store"
)

var (
	scansTotal      = expvar.NewInt("scans_total")
	persistFailures = expvar.NewInt("scan_persist_failures")
)

type App struct {
	Cfg     config.Config
	Store   *store.Store
	Source  scan.Source
	closing atomic.Bool

	showcase []store.Showcase
	started  time.Time

	// scanMu serializes flow runs; they share one identifier file.
	scanMu sync.Mutex
}

type addProductRequest struct {
	ProductID model.ProductID `json:"product_id"`
	model.Product
}

// NewApp wires the handlers to st. The embedded showcase is parsed here so a
// broken document fails startup instead of every request.
func NewApp(cfg config.Config, st *store.Store) (*App, error) {
	items, err := store.LoadShowcase()
	if err != nil {
		return nil, err
	}
	return &App{
		Cfg:      cfg,
		Store:    st,
		Source:   scan.FixedSource(cfg.ProductID),
		showcase: items,
		started:  time.Now(),
	}, nil
}

func (a *App) StartShutdown() { a.closing.Store(true) }

// countingPersister records failures for /debug/metrics.
type countingPersister struct{ scan.Persister }

func (p countingPersister) Persist(id model.ProductID) error {
	err := p.Persister.Persist(id)
	if err != nil {
		persistFailures.Add(1)
	}
	return err
}

func (a *App) postScanHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	if a.closing.Load() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	reqID := RequestIDFromContext(r.Context())
	log := obs.Logger.With("request_id", reqID)

	var out bytes.Buffer
	a.scanMu.Lock()
	flow := &scan.Flow{
		Source:    a.Source,
		Persister: countingPersister{idfile.File{Path: a.Cfg.ProductIDFile}},
		Out:       &out,
		Log:       log,
	}
	flow.Run()
	id, ok, err := idfile.Read(a.Cfg.ProductIDFile)
	a.scanMu.Unlock()
	scansTotal.Add(1)
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	rep := model.ScanReport{
		ScanID:    uuid.NewString(),
		Output:    strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n"),
		ScannedAt: time.Now().UTC().Format(time.RFC3339),
		Info:      "No product ID found.",
	}
	if ok {
		rep.ProductID = id
		rep.Info = a.Store.Info(id)
		if p, found := a.Store.Get(id); found {
			rep.Found = true
			rep.Product = &p
		}
	}
	writeJSON(w, http.StatusOK, rep)
	log.Info("scan_served", "scan_id", rep.ScanID, "product_id", rep.ProductID.String(), "found", rep.Found)
}

func (a *App) productsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, a.Store.List())
	case http.MethodPost:
		a.addProduct(w, r)
	default:
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	}
}

func (a *App) addProduct(w http.ResponseWriter, r *http.Request) {
	if a.closing.Load() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return
	}
	var req addProductRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "product_id is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}
	if err := a.Store.Add(req.ProductID, req.Product); err != nil {
		if errors.Is(err, store.ErrInvalidProduct) {
			WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, store.Entry{ProductID: req.ProductID, Product: req.Product})
	obs.Logger.Info("product_added",
		"request_id", RequestIDFromContext(r.Context()),
		"product_id", req.ProductID.String(),
		"catalog_size", a.Store.Len(),
	)
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	prefix := "/products/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	id := model.ProductID(strings.TrimPrefix(r.URL.Path, prefix))
	if id == "" {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	p, ok := a.Store.Get(id)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "not_found", store.NotAvailable)
		return
	}
	writeJSON(w, http.StatusOK, store.Entry{ProductID: id, Product: p})
}

func (a *App) showcaseHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	writeJSON(w, http.StatusOK, a.showcase)
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	m := map[string]any{
		"scans_total":           scansTotal.Value(),
		"scan_persist_failures": persistFailures.Value(),
		"catalog_size":          a.Store.Len(),
		"uptime_sec":            time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Product Scanner API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
