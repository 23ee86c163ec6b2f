package model

import "encoding/json"

// KukaiBackup represents a Kukai wallet backup file (.tez)
// Only the fields needed for seed recovery are decoded, the rest are ignored
type KukaiBackup struct {
	Version          json.RawMessage `json:"version"`    // any JSON value, checked by Validate
	WalletType       json.RawMessage `json:"walletType"` // any JSON value, checked by Validate
	Pkh              string          `json:"pkh,omitempty"`
	IV               string          `json:"iv"`
	EncryptedEntropy string          `json:"encryptedEntropy"`
}
