package accounts

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/repositories"
	"github.com/desertthunder/moviemaze/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

func newTestRegistry() (*Registry, *repositories.MemorySlotStore) {
	slots := repositories.NewMemorySlotStore()
	r := NewRegistry(slots, nil)
	r.SetCost(bcrypt.MinCost)
	return r, slots
}

func TestSignup(t *testing.T) {
	t.Run("stores hashed password", func(t *testing.T) {
		r, slots := newTestRegistry()
		cred, err := r.Signup("Jane", "jane@x.com", "hunter2")
		if err != nil {
			t.Fatalf("failed to sign up: %v", err)
		}
		if cred.Password != "" {
			t.Error("expected returned credential to omit the password")
		}

		data, _ := slots.Get(models.SlotAccounts)
		if strings.Contains(string(data), "hunter2") {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		r, _ := newTestRegistry()
		tests := [][3]string{{"", "a@x.com", "p"}, {"A", " ", "p"}, {"A", "a@x.com", ""}}
		for _, tt := range tests {
			if _, err := r.Signup(tt[0], tt[1], tt[2]); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("Signup(%q, %q, %q): expected ErrMissingArgument, got %v", tt[0], tt[1], tt[2], err)
			}
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		r, _ := newTestRegistry()
		_, _ = r.Signup("Jane", "jane@x.com", "one")
		if _, err := r.Signup("Other", "JANE@x.com", "two"); !errors.Is(err, shared.ErrAccountExists) {
			t.Errorf("expected ErrAccountExists, got %v", err)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	r, _ := newTestRegistry()
	_, _ = r.Signup("Jane", "jane@x.com", "hunter2")

	cred, err := r.Authenticate("jane@x.com", "hunter2")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if cred.Name != "Jane" || cred.Password != "" {
		t.Errorf("unexpected credential %+v", cred)
	}

	for _, tt := range [][2]string{{"jane@x.com", "wrong"}, {"nobody@x.com", "hunter2"}} {
		if _, err := r.Authenticate(tt[0], tt[1]); !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("Authenticate(%q): expected ErrInvalidCredentials, got %v", tt[0], err)
		}
	}
}

func TestList(t *testing.T) {
	r, slots := newTestRegistry()
	_ = slots.Set(models.SlotAccounts, []byte(`not json`))
	if list, err := r.List(); err != nil || len(list) != 0 {
		t.Errorf("expected corrupt slot to read as empty, got %v %v", list, err)
	}

	_, _ = r.Signup("A", "a@x.com", "p")
	_, _ = r.Signup("B", "b@x.com", "p")
	list, err := r.List()
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(list) != 2 || list[0].Email != "a@x.com" || list[1].Password != "" {
		t.Errorf("unexpected list %+v", list)
	}
}
