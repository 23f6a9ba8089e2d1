package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cloudnine-labs/account-service/internal/models"
	"github.com/cloudnine-labs/account-service/internal/repositories"
)

const ServiceName = "Account REST API Service"
const ServiceVersion = "1.0"

// AccountHandler maps the HTTP surface onto the account repository.
type AccountHandler struct {
	repo repositories.AccountRepository
}

func NewAccountHandler(repo repositories.AccountRepository) *AccountHandler {
	return &AccountHandler{repo: repo}
}

// Health reports liveness.
func (h *AccountHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// Index returns service metadata for the root URL.
func (h *AccountHandler) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"name":    ServiceName,
		"version": ServiceVersion,
	})
}

// Create inserts a new account from the request body and returns it with
// its store-assigned id and a Location header.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Println("Request to create an account")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	account := &models.Account{}
	if err := account.Deserialize(body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.Create(r.Context(), account); err != nil {
		log.Printf("Failed to create account: %v", err)
		respondError(w, http.StatusInternalServerError, "could not create the account")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/accounts/%d", account.ID))
	respondJSON(w, http.StatusCreated, account)
}

// List returns every account, as an empty array when there are none.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("Failed to list accounts: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list accounts")
		return
	}
	log.Printf("Found [%d] total accounts", len(accounts))
	respondJSON(w, http.StatusOK, accounts)
}

// Get returns a single account by id.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	account, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Account with id [%d] could not be found.", id))
		return
	}
	if err != nil {
		log.Printf("Failed to get account %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "could not read the account")
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// Update replaces the fields of an existing account with the request body.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	account, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Account with id [%d] could not be found.", id))
		return
	}
	if err != nil {
		log.Printf("Failed to get account %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "could not read the account")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	if err := account.Deserialize(body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.repo.Update(r.Context(), account)
	if errors.Is(err, repositories.ErrNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Account with id [%d] could not be found.", id))
		return
	}
	if errors.Is(err, models.ErrValidation) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("Failed to update account %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "could not update the account")
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// Delete removes an account. Deleting an id that does not exist is treated
// as already deleted and still returns 204.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}
	log.Printf("Request to delete account with id [%d]", id)

	_, err := h.repo.GetByID(r.Context(), id)
	if err == nil {
		if err := h.repo.Delete(r.Context(), id); err != nil {
			log.Printf("Failed to delete account %d: %v", id, err)
			respondError(w, http.StatusInternalServerError, "could not delete the account")
			return
		}
	} else if !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("Failed to get account %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "could not delete the account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// accountID parses the {id} URL segment. A segment that is not an integer
// can never name an account, so it reads as 404 rather than 400.
func (h *AccountHandler) accountID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Account with id [%s] could not be found.", raw))
		return 0, false
	}
	return id, true
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]interface{}{
		"status":  code,
		"error":   http.StatusText(code),
		"message": message,
	})
}
