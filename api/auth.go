package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/wattshed/timesheet/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo        repository.UserRepo
	sessionSecret   string
	sessionDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, sessionSecret string, sessionDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, sessionSecret: sessionSecret, sessionDuration: sessionDuration}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login accepts either the login form or a JSON body. Successful form logins
// redirect to the app page; JSON clients get a 200 with the session set as a
// cookie either way.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	isJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
	if isJSON {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "invalid request", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, "invalid request", http.StatusBadRequest)
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	}
	req.Username = strings.TrimSpace(req.Username)

	reject := func() {
		if isJSON {
			writeError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Redirect(w, r, "/login?error=1", http.StatusFound)
	}

	user, err := h.userRepo.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, "failed to look up user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		reject()
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		reject()
		return
	}

	token, err := newSessionToken(h.sessionSecret, h.sessionDuration, user.ID, user.Username)
	if err != nil {
		writeError(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	setSessionCookie(w, token, h.sessionDuration)

	if isJSON {
		writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
		return
	}
	http.Redirect(w, r, "/app", http.StatusFound)
}

// Logout clears the session cookie. POST only, to keep logout off plain links.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
