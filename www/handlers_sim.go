package www

import (
	"encoding/json"
	"net/http"

	"zeroedge/config"
)

// --- Auth ---

func (h *Handlers) apiLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.engine.DB().GetAdminUser(req.Username)
	if err != nil || !checkPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.sessions.setUser(w, r, user.Username)
	writeJSON(w, map[string]string{"status": "ok", "username": user.Username})
}

func (h *Handlers) apiLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.clear(w, r)
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handlers) apiChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, "new password must be at least 8 characters")
		return
	}

	username, _ := h.sessions.getUser(r)
	user, err := h.engine.DB().GetAdminUser(username)
	if err != nil || !checkPassword(req.CurrentPassword, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "current password incorrect")
		return
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.engine.DB().UpdateAdminPassword(username, hash); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// --- Simulation controls ---

func (h *Handlers) apiForceError(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid machine ID")
		return
	}
	m, err := h.engine.Scheduler().ForceError(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "machine not found")
		return
	}
	writeJSON(w, m)
}

func (h *Handlers) apiExpireTool(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tool ID")
		return
	}
	t, err := h.engine.Scheduler().ExpireTool(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "tool not found")
		return
	}
	writeJSON(w, t)
}

func (h *Handlers) apiInjectQualityRecords(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Count <= 0 || req.Count > 500 {
		writeError(w, http.StatusBadRequest, "count must be between 1 and 500")
		return
	}

	created, err := h.engine.Scheduler().InjectQualityRecords(req.Count)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]int{"created": created})
}

// --- Config ---

func (h *Handlers) apiUpdateMessaging(w http.ResponseWriter, r *http.Request) {
	var req config.MessagingConfig
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Backend != "mqtt" && req.Backend != "kafka" {
		writeError(w, http.StatusBadRequest, "backend must be \"mqtt\" or \"kafka\"")
		return
	}

	cfg := h.engine.AppConfig()
	cfg.Lock()
	cfg.Messaging = req
	cfg.Unlock()

	if err := cfg.Save(h.engine.ConfigPath()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Takes effect on restart; the running client keeps its connection.
	writeJSON(w, map[string]string{"status": "saved"})
}
