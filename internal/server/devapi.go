package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

const maxBodyBytes = 1 << 20

type account struct {
	user models.User
	hash []byte
}

// DevAPI is an in-memory implementation of the auth API.
type DevAPI struct {
	mu       sync.RWMutex
	accounts map[string]*account // keyed by lower-cased email
	tokens   *TokenService
	logger   *log.Logger
}

// NewDevAPI creates an auth API with no accounts.
func NewDevAPI(tokens *TokenService, logger *log.Logger) *DevAPI {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &DevAPI{
		accounts: make(map[string]*account),
		tokens:   tokens,
		logger:   logger,
	}
}

// Register mounts the auth routes on r. OPTIONS is registered too so preflights reach [CORS].
func (d *DevAPI) Register(r Router) {
	routes := map[string]http.HandlerFunc{
		"/api/signup": d.Signup,
		"/api/login":  d.Login,
		"/api/verify": d.Verify,
	}
	for path, h := range routes {
		r.Handle(http.MethodPost, path, h)
		r.Handle(http.MethodOptions, path, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
	}
}

// Signup creates an account and returns a token for it.
func (d *DevAPI) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		d.logger.Error("failed to hash password", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	key := strings.ToLower(req.Email)
	acct := &account{
		user: models.User{ID: models.ID(shared.GenerateID()), Email: req.Email, Name: req.Name},
		hash: hash,
	}

	d.mu.Lock()
	if _, exists := d.accounts[key]; exists {
		d.mu.Unlock()
		writeMessage(w, http.StatusConflict, "User already exists")
		return
	}
	d.accounts[key] = acct
	d.mu.Unlock()

	d.logger.Info("account created", "id", acct.user.ID, "email", acct.user.Email)
	d.respondWithToken(w, http.StatusCreated, acct.user, "User created successfully")
}

// Login checks credentials and returns a fresh token.
func (d *DevAPI) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d.mu.RLock()
	acct, ok := d.accounts[strings.ToLower(strings.TrimSpace(req.Email))]
	d.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	d.respondWithToken(w, http.StatusOK, acct.user, "Login successful")
}

// Verify resolves a token to its account.
func (d *DevAPI) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := decodeBody(r, &req); err != nil || req.Token == "" {
		writeMessage(w, http.StatusBadRequest, "Token is required")
		return
	}

	claims, err := d.tokens.Parse(req.Token)
	if err != nil {
		d.logger.Debug("token rejected", "error", err)
		writeMessage(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	d.mu.RLock()
	acct, ok := d.accounts[strings.ToLower(claims.Email)]
	d.mu.RUnlock()

	if !ok || acct.user.ID.String() != claims.Subject {
		writeMessage(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{User: &acct.user})
}

// Accounts returns the number of registered accounts.
func (d *DevAPI) Accounts() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}

func (d *DevAPI) respondWithToken(w http.ResponseWriter, status int, user models.User, message string) {
	token, err := d.tokens.Sign(user.ID.String(), user.Email)
	if err != nil {
		d.logger.Error("failed to sign token", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, status, models.AuthResponse{Token: token, User: &user, Message: message})
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Message: message})
}
