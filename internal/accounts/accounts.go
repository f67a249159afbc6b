// package accounts is the local sign-up registry that backs username/password login.
//
// Entries live in the "users" slot as `[{name, email, password}]`. Passwords are bcrypt hashes.
package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// Registry stores sign-up credentials.
type Registry struct {
	mu     sync.Mutex
	slots  models.SlotStore
	logger *log.Logger
	cost   int
}

// NewRegistry creates a Registry over slots.
func NewRegistry(slots models.SlotStore, logger *log.Logger) *Registry {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &Registry{slots: slots, logger: logger, cost: bcrypt.DefaultCost}
}

// SetCost changes the bcrypt cost used for new passwords. Values outside bcrypt's range fall back to the default.
func (r *Registry) SetCost(cost int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	r.cost = cost
}

// Signup adds an account. All fields are required and the email must not be registered yet.
func (r *Registry) Signup(name, email, password string) (models.Credential, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return models.Credential{}, fmt.Errorf("%w: name, email and password are required", shared.ErrMissingArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return models.Credential{}, err
	}
	for _, e := range entries {
		if strings.EqualFold(e.Email, email) {
			return models.Credential{}, shared.ErrAccountExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return models.Credential{}, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := models.Credential{Name: name, Email: email, Password: string(hash)}
	if err := r.save(append(entries, cred)); err != nil {
		return models.Credential{}, err
	}

	r.logger.Debug("account created", "email", email)
	cred.Password = ""
	return cred, nil
}

// Authenticate returns the account matching email and password, or [shared.ErrInvalidCredentials].
func (r *Registry) Authenticate(email, password string) (models.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return models.Credential{}, err
	}

	email = strings.TrimSpace(email)
	for _, e := range entries {
		if !strings.EqualFold(e.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password)) != nil {
			break
		}
		e.Password = ""
		return e, nil
	}
	return models.Credential{}, shared.ErrInvalidCredentials
}

// List returns the registered accounts without their password hashes.
func (r *Registry) List() ([]models.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Password = ""
	}
	return entries, nil
}

func (r *Registry) load() ([]models.Credential, error) {
	data, err := r.slots.Get(models.SlotAccounts)
	if err != nil {
		if errors.Is(err, shared.ErrSlotNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	var entries []models.Credential
	if err := json.Unmarshal(data, &entries); err != nil {
		r.logger.Warn("ignoring corrupt accounts slot", "error", err)
		return nil, nil
	}
	return entries, nil
}

func (r *Registry) save(entries []models.Credential) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	if err := r.slots.Set(models.SlotAccounts, data); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}
