package kukai

import (
	"encoding/base64"
	"fmt"

	"github.com/AlexZinkM/kukai-seed/internal/common"
	"github.com/AlexZinkM/kukai-seed/internal/crypto"
	"github.com/AlexZinkM/kukai-seed/internal/model"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// RevealFromFile reads a Kukai backup from disk and recovers its seed phrase.
// password must be []byte for security (caller should zero it after use)
func RevealFromFile(filePath string, password []byte, withQR bool) (*model.RevealResponse, error) {
	data, err := crypto.ReadBackupFile(filePath)
	if err != nil {
		return nil, err
	}
	defer clear(data)

	return Reveal(data, password, withQR)
}

// Reveal recovers the seed phrase from backup JSON.
// With withQR set, the phrase is also returned as a base64 PNG QR code.
func Reveal(data []byte, password []byte, withQR bool) (*model.RevealResponse, error) {
	mnemonic, err := crypto.DecryptSeedPhrase(data, password)
	if err != nil {
		return nil, err
	}

	resp := &model.RevealResponse{
		Mnemonic:  mnemonic,
		WordCount: common.WordCount(mnemonic),
	}

	if withQR {
		qr, err := generateQRCode(mnemonic)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code: %w", err)
		}
		resp.QR = qr
	}
	return resp, nil
}

// Inspect reports what a backup is without decrypting it
func Inspect(data []byte) (*model.InspectResponse, error) {
	backup, err := crypto.ParseBackup(data)
	if err != nil {
		return nil, err
	}

	resp := &model.InspectResponse{
		Version:    string(backup.Version),
		WalletType: string(backup.WalletType),
		Pkh:        backup.Pkh,
		Supported:  true,
	}
	if _, err := crypto.Validate(backup); err != nil {
		resp.Supported = false
		resp.Reason = crypto.UserMessage(err)
	}
	return resp, nil
}

// WriteQRFile writes the phrase as a PNG QR code to filePath
func WriteQRFile(mnemonic, filePath string) error {
	if err := qrcode.WriteFile(mnemonic, qrcode.Medium, qrSize, filePath); err != nil {
		return fmt.Errorf("failed to write QR code: %w", err)
	}
	return nil
}

// generateQRCode generates QR code of the phrase in base64
func generateQRCode(mnemonic string) (string, error) {
	qr, err := qrcode.New(mnemonic, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(qrSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	// Encode to base64
	return base64.StdEncoding.EncodeToString(png), nil
}
