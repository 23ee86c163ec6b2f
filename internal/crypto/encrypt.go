package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/AlexZinkM/kukai-seed/internal/model"

	"github.com/tyler-smith/go-bip39"
)

// EncryptSeedPhrase builds a Kukai v3 backup holding the entropy of mnemonic.
// It mirrors what the Kukai wallet wrote, so DecryptSeedPhrase can read it back.
// password must be []byte for security (caller should zero it after use)
func EncryptSeedPhrase(mnemonic string, password []byte, walletType int) (*model.KukaiBackup, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: empty password", ErrInvalidInput)
	}
	if walletType != WalletTypeFull && walletType != WalletTypeFundraiser {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedWalletType, walletType)
	}

	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid mnemonic: %v", ErrInvalidInput, err)
	}
	defer clear(entropy) // wipe entropy from memory

	// Generate stored iv
	storedIV := make([]byte, ivLen)
	if _, err := io.ReadFull(rand.Reader, storedIV); err != nil {
		return nil, fmt.Errorf("failed to generate iv: %w", err)
	}
	storedIVHex := hex.EncodeToString(storedIV)

	key, iv, err := DeriveKeyAndIV(password, storedIVHex)
	if err != nil {
		return nil, err
	}
	defer clear(key) // wipe derived key from memory

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCMWithNonceSize(block, len(iv))
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Seal appends the tag, Kukai stores it separately
	sealed := aesGCM.Seal(nil, iv, entropy, nil)
	ciphertext, tag := sealed[:len(sealed)-tagLen], sealed[len(sealed)-tagLen:]

	return &model.KukaiBackup{
		Version:          json.RawMessage(strconv.Itoa(supportedVersion)),
		WalletType:       json.RawMessage(strconv.Itoa(walletType)),
		IV:               storedIVHex,
		EncryptedEntropy: hex.EncodeToString(ciphertext) + entropyDelimiter + hex.EncodeToString(tag),
	}, nil
}

// WriteBackupFile writes backup as indented JSON. Existing non-empty files are not overwritten.
func WriteBackupFile(filePath string, backup *model.KukaiBackup) error {
	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return fmt.Errorf("file is not empty: %w", os.ErrExist)
	}

	fileData, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	if err := os.WriteFile(filePath, fileData, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
