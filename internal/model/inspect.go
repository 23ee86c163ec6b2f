package model

import "encoding/json"

// InspectRequest represents request for POST /kukai/inspect
type InspectRequest struct {
	Backup json.RawMessage `json:"backup" binding:"required"`
}

// InspectResponse represents response for POST /kukai/inspect
type InspectResponse struct {
	Version    string `json:"version"`
	WalletType string `json:"walletType"`
	Pkh        string `json:"pkh,omitempty"`
	Supported  bool   `json:"supported"`
	Reason     string `json:"reason,omitempty"`
}
