package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/kukai-seed/internal/crypto"
	"github.com/AlexZinkM/kukai-seed/internal/model"
	"github.com/AlexZinkM/kukai-seed/kukai"

	"go.uber.org/zap"
)

// KukaiHandler serves seed recovery for Kukai backups
type KukaiHandler struct {
	log          *zap.Logger
	maxBodyBytes int64
}

// NewKukaiHandler creates a new KukaiHandler
func NewKukaiHandler(log *zap.Logger, maxBodyBytes int64) *KukaiHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &KukaiHandler{log: log, maxBodyBytes: maxBodyBytes}
}

// Reveal handles POST /kukai/reveal
// @Summary      Reveal seed phrase
// @Description  Decrypts a Kukai v3 backup and returns its BIP-39 seed phrase
// @Tags         kukai
// @Accept       json
// @Produce      json
// @Param        request  body      model.RevealRequest  true  "Backup and password"
// @Success      200      {object}  model.RevealResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /kukai/reveal [post]
func (h *KukaiHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RevealRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid request body", "BadRequest")
		return
	}

	// Password as []byte, use it, then zero it immediately
	password := []byte(req.Password)
	req.Password = ""
	defer clear(password) // Always clear password from memory
	defer clear(req.Backup)

	if isEmptyJSON(req.Backup) {
		h.writeError(w, r, http.StatusBadRequest, crypto.MsgMalformedBackup, crypto.Kind(crypto.ErrMalformedBackup))
		return
	}

	resp, err := kukai.Reveal(req.Backup, password, req.QR)
	if err != nil {
		h.writeError(w, r, statusFor(err), crypto.UserMessage(err), crypto.Kind(err))
		return
	}

	h.log.Info("seed phrase revealed", zap.String("path", r.URL.Path), zap.Int("words", resp.WordCount))
	writeJSON(w, http.StatusOK, resp)
}

// Inspect handles POST /kukai/inspect
// @Summary      Inspect backup
// @Description  Reports version, wallet type and address of a Kukai backup without decrypting it
// @Tags         kukai
// @Accept       json
// @Produce      json
// @Param        request  body      model.InspectRequest  true  "Backup"
// @Success      200      {object}  model.InspectResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /kukai/inspect [post]
func (h *KukaiHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.InspectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid request body", "BadRequest")
		return
	}

	resp, err := kukai.Inspect(req.Backup)
	if err != nil {
		h.writeError(w, r, statusFor(err), crypto.UserMessage(err), crypto.Kind(err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// statusFor maps core errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, crypto.ErrMalformedCiphertext),
		errors.Is(err, crypto.ErrAuthenticationFailed),
		errors.Is(err, crypto.ErrInvalidEntropyLength),
		errors.Is(err, crypto.ErrInvalidIncrement),
		errors.Is(err, crypto.ErrInvalidInput):
		return http.StatusUnauthorized
	case errors.Is(err, crypto.ErrMalformedBackup),
		errors.Is(err, crypto.ErrUnsupportedVersion),
		errors.Is(err, crypto.ErrUnsupportedWalletType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs the error kind only, never request content
func (h *KukaiHandler) writeError(w http.ResponseWriter, r *http.Request, status int, message, code string) {
	h.log.Warn("request failed",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("kind", code),
	)
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
