package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlexZinkM/kukai-seed/internal/common"
	"github.com/AlexZinkM/kukai-seed/internal/model"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters of Kukai v3 backups.
	// These were baked into existing files and must never change.
	scryptN      = 1 << 16
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32

	supportedVersion = 3
	ivLen            = 16
	tagLen           = 16
	ivBumpIndex      = 13
	maxIVBumps       = 255

	// ciphertext and tag are joined with this in encryptedEntropy
	entropyDelimiter = "=="
)

// Fundraiser-style wallet types in Kukai numbering
const (
	WalletTypeFull       = 0
	WalletTypeFundraiser = 4
)

// scryptKey is replaced in tests to observe key derivation
var scryptKey = scrypt.Key

// ReadBackupFile reads a backup file from disk
func ReadBackupFile(filePath string) ([]byte, error) {
	// Check if file exists
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("file does not exist")
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Check that file is not empty
	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return fileData, nil
}

// ReadBackupAddress reads only the pkh from a backup file (without decryption)
func ReadBackupAddress(filePath string) (string, error) {
	fileData, err := ReadBackupFile(filePath)
	if err != nil {
		return "", err
	}

	backup, err := ParseBackup(fileData)
	if err != nil {
		return "", err
	}
	return backup.Pkh, nil
}

// ParseBackup decodes backup JSON. Extra fields are ignored.
func ParseBackup(data []byte) (*model.KukaiBackup, error) {
	data = common.TrimUTF8BOM(data)

	// Top level must be an object, checked before typed decoding
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%w: top level must be a JSON object", ErrMalformedBackup)
	}

	var backup model.KukaiBackup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	return &backup, nil
}

// Validate checks that the backup is a version 3 fundraiser-style wallet.
// Non-numeric version or walletType count as unsupported. Returns the wallet type.
func Validate(backup *model.KukaiBackup) (int, error) {
	if backup == nil {
		return 0, fmt.Errorf("%w: nil backup", ErrMalformedBackup)
	}

	version, ok, err := common.IntField(backup.Version)
	if err != nil || !ok || version != supportedVersion {
		return 0, fmt.Errorf("%w: version %q", ErrUnsupportedVersion, string(backup.Version))
	}

	walletType, ok, err := common.IntField(backup.WalletType)
	if err != nil || !ok || (walletType != WalletTypeFull && walletType != WalletTypeFundraiser) {
		return 0, fmt.Errorf("%w: walletType %q", ErrUnsupportedWalletType, string(backup.WalletType))
	}
	return int(walletType), nil
}

// BumpIV adds bumps (mod 256) to byte 13 of the hex salt and returns it as hex.
// Only bumps of 0..255 are valid since they address a single byte.
func BumpIV(saltHex string, bumps int) (string, error) {
	if bumps < 0 || bumps > maxIVBumps {
		return "", fmt.Errorf("%w: %d", ErrInvalidIncrement, bumps)
	}
	if saltHex == "" {
		return "", fmt.Errorf("%w: empty salt", ErrInvalidInput)
	}

	buf, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", fmt.Errorf("%w: salt is not hex", ErrInvalidInput)
	}
	if len(buf) <= ivBumpIndex {
		return "", fmt.Errorf("%w: salt too short (%d bytes)", ErrInvalidInput, len(buf))
	}

	buf[ivBumpIndex] += byte(bumps) // wraps mod 256
	return hex.EncodeToString(buf), nil
}

// DeriveKeyAndIV derives the AES key and GCM nonce from password and the stored iv.
// The stored iv bumped once serves as both scrypt salt and nonce.
// Caller must clear the returned key after use.
func DeriveKeyAndIV(password []byte, saltHex string) (key, iv []byte, err error) {
	if len(password) == 0 || saltHex == "" {
		return nil, nil, fmt.Errorf("%w: missing password or salt", ErrInvalidInput)
	}

	iv, err = deriveIV(saltHex)
	if err != nil {
		return nil, nil, err
	}

	key, err = scryptKey(password, iv, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, iv, nil
}

func deriveIV(saltHex string) ([]byte, error) {
	bumped, err := BumpIV(saltHex, 1)
	if err != nil {
		return nil, err
	}

	iv, err := hex.DecodeString(bumped)
	if err != nil {
		return nil, fmt.Errorf("%w: iv is not hex", ErrInvalidInput)
	}
	if len(iv) != ivLen {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", ErrInvalidInput, ivLen, len(iv))
	}
	return iv, nil
}

// splitEncryptedEntropy splits "<ciphertext hex>==<tag hex>" into raw bytes
func splitEncryptedEntropy(encryptedEntropy string) (ciphertext, tag []byte, err error) {
	parts := strings.Split(encryptedEntropy, entropyDelimiter)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("%w: expected 2 parts, got %d", ErrMalformedCiphertext, len(parts))
	}

	ciphertext, err = hex.DecodeString(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ciphertext is not hex", ErrMalformedCiphertext)
	}
	tag, err = hex.DecodeString(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: tag is not hex", ErrMalformedCiphertext)
	}
	if len(tag) != tagLen {
		return nil, nil, fmt.Errorf("%w: tag must be %d bytes, got %d", ErrMalformedCiphertext, tagLen, len(tag))
	}
	return ciphertext, tag, nil
}

// DecryptEntropy decrypts encryptedEntropy with AES-GCM.
// Caller must clear the returned entropy after use.
func DecryptEntropy(encryptedEntropy string, key, iv []byte) ([]byte, error) {
	ciphertext, tag, err := splitEncryptedEntropy(encryptedEntropy)
	if err != nil {
		return nil, err
	}
	return openGCM(ciphertext, tag, key, iv)
}

func openGCM(ciphertext, tag, key, iv []byte) ([]byte, error) {
	// Create AES cipher
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// Kukai uses the full 16 byte iv as GCM nonce
	aesGCM, err := cipher.NewGCMWithNonceSize(block, len(iv))
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aesGCM.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// BuildMnemonic encodes entropy as a BIP-39 English mnemonic
func BuildMnemonic(entropy []byte) (string, error) {
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("%w: %d bytes", ErrInvalidEntropyLength, len(entropy))
	}
	return mnemonic, nil
}

// DecryptSeedPhrase recovers the mnemonic from Kukai backup JSON.
// password must be []byte for security (caller should zero it after use)
func DecryptSeedPhrase(data []byte, password []byte) (string, error) {
	backup, err := ParseBackup(data)
	if err != nil {
		return "", err
	}

	if _, err := Validate(backup); err != nil {
		return "", err
	}

	// Format checks before scrypt, which is expensive
	ciphertext, tag, err := splitEncryptedEntropy(backup.EncryptedEntropy)
	if err != nil {
		return "", err
	}

	key, iv, err := DeriveKeyAndIV(password, backup.IV)
	if err != nil {
		return "", err
	}
	defer clear(key) // wipe derived key from memory

	entropy, err := openGCM(ciphertext, tag, key, iv)
	if err != nil {
		return "", err
	}
	defer clear(entropy) // wipe decrypted bytes from memory

	return BuildMnemonic(entropy)
}
