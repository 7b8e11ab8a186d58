package stub

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mcoutinho/salesdesk/internal/domain"
	"github.com/mcoutinho/salesdesk/pkg/web"
)

// Handler serves the backend REST contract on top of a Store.
type Handler struct {
	store    *Store
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new Handler with the provided store.
func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		validate: domain.NewValidator(),
		logger:   logger.With("component", "stub"),
	}
}

// RegisterRoutes registers the backend routes under /api.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/stock-items", func(r chi.Router) {
			r.Get("/", h.ListStockItems)
			r.Post("/", h.CreateStockItem)
			// The contract overloads this segment: a search term on GET,
			// a numeric id on PUT/DELETE. One wildcard name serves both.
			r.Get("/{id}", h.SearchStockItems)
			r.Put("/{id}", h.UpdateStockItem)
			r.Delete("/{id}", h.DeleteStockItem)
		})
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListClients)
			r.Post("/", h.CreateClient)
			r.Put("/{id}", h.UpdateClient)
			r.Delete("/{id}", h.DeleteClient)
		})
		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.ListSales)
			r.Post("/", h.CreateSale)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// ListStockItems returns every stock item.
func (h *Handler) ListStockItems(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.store.ListStockItems())
}

// SearchStockItems returns items matching the name path segment. The response
// is always a JSON array, possibly empty.
func (h *Handler) SearchStockItems(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	name := r.PathValue("id") // search term; see route registration
	items := h.store.SearchStockItems(name)
	mLogger.DebugContext(r.Context(), "Stock search", "query", name, "matches", len(items))
	web.RespondJSON(w, mLogger, http.StatusOK, items)
}

// CreateStockItem adds a stock item.
func (h *Handler) CreateStockItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var req domain.StockItemRequest
	if !h.decodeAndValidate(w, r, mLogger, &req) {
		return
	}
	item := h.store.CreateStockItem(req)
	mLogger.InfoContext(r.Context(), "Stock item created", "ID", item.ID, "Name", item.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, item)
}

// UpdateStockItem replaces a stock item.
func (h *Handler) UpdateStockItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var req domain.StockItemRequest
	if !h.decodeAndValidate(w, r, mLogger, &req) {
		return
	}
	item, err := h.store.UpdateStockItem(id, req)
	if err != nil {
		if errors.Is(err, ErrStockItemNotFound) {
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Stock item with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating stock item", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update stock item")
		return
	}
	mLogger.InfoContext(r.Context(), "Stock item updated", "ID", item.ID, "Name", item.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, item)
}

// DeleteStockItem removes a stock item.
func (h *Handler) DeleteStockItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.store.DeleteStockItem(id); err != nil {
		if errors.Is(err, ErrStockItemNotFound) {
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Stock item with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting stock item", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to delete stock item")
		return
	}
	mLogger.InfoContext(r.Context(), "Stock item deleted", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// ListClients returns the client directory.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.store.ListClients())
}

// CreateClient adds a client.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var req domain.ClientRequest
	if !h.decodeAndValidate(w, r, mLogger, &req) {
		return
	}
	client := h.store.CreateClient(req)
	mLogger.InfoContext(r.Context(), "Client created", "ID", client.ID, "Name", client.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, client)
}

// UpdateClient replaces a client.
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var req domain.ClientRequest
	if !h.decodeAndValidate(w, r, mLogger, &req) {
		return
	}
	client, err := h.store.UpdateClient(id, req)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Client with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating client", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update client")
		return
	}
	mLogger.InfoContext(r.Context(), "Client updated", "ID", client.ID, "Name", client.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, client)
}

// DeleteClient removes a client.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.store.DeleteClient(id); err != nil {
		if errors.Is(err, ErrClientNotFound) {
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Client with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting client", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	mLogger.InfoContext(r.Context(), "Client deleted", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// ListSales returns the sale history.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.store.ListSales())
}

// CreateSale records a sale and decrements the matching product's stock.
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var req domain.SaleRequest
	if !h.decodeAndValidate(w, r, mLogger, &req) {
		return
	}
	sale, err := h.store.CreateSale(req)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("No stock item named %q", req.ProductName))
		case errors.Is(err, ErrClientNotFound):
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Client with ID %d not found", *req.ClientID))
		case errors.Is(err, ErrInsufficientStock):
			web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Not enough stock of %q", req.ProductName))
		default:
			mLogger.ErrorContext(r.Context(), "Error creating sale", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create sale")
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Sale created", "ID", sale.ID, "Product", sale.ProductName, "Quantity", sale.Quantity)
	web.RespondJSON(w, mLogger, http.StatusCreated, sale)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, _ := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}

// decodeAndValidate decodes the JSON body into dst and validates it,
// answering 400 with field errors on failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		mLogger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
