package httpapi

import (
	"net/http"

	"leadscout-engine/internal/secrets"
)

type SecretsHandler struct{}

type setTokenReq struct {
	Token string `json:"token"`
}

func (h SecretsHandler) SetActorToken(w http.ResponseWriter, r *http.Request) {
	var req setTokenReq
	if err := decodeStrict(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	if err := secrets.SetActorToken(req.Token); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_error", "failed to store token: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
