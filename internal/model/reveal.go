package model

import "encoding/json"

// RevealRequest represents request for POST /kukai/reveal
type RevealRequest struct {
	Backup   json.RawMessage `json:"backup" binding:"required"`
	Password string          `json:"password" binding:"required"`
	QR       bool            `json:"qr"`
}

// RevealResponse represents response for POST /kukai/reveal
type RevealResponse struct {
	Mnemonic  string `json:"mnemonic"`
	WordCount int    `json:"wordCount"`
	QR        string `json:"QR,omitempty"` // base64 PNG
}
