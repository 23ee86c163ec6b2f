package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/AlexZinkM/kukai-seed/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

const (
	testPassword = "correct horse battery staple"
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	zeroSalt     = "00000000000000000000000000000000"
)

func mustBackupJSON(t *testing.T, backup *model.KukaiBackup) []byte {
	t.Helper()
	data, err := json.Marshal(backup)
	require.NoError(t, err)
	return data
}

// sealRaw encrypts arbitrary plaintext the way Kukai does, bypassing mnemonic checks
func sealRaw(t *testing.T, password []byte, storedIVHex string, plaintext []byte) string {
	t.Helper()
	key, iv, err := DeriveKeyAndIV(password, storedIVHex)
	require.NoError(t, err)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	aesGCM, err := cipher.NewGCMWithNonceSize(block, len(iv))
	require.NoError(t, err)

	sealed := aesGCM.Seal(nil, iv, plaintext, nil)
	n := len(sealed) - tagLen
	return hex.EncodeToString(sealed[:n]) + entropyDelimiter + hex.EncodeToString(sealed[n:])
}

func TestBumpIV(t *testing.T) {
	tests := []struct {
		name    string
		salt    string
		bumps   int
		want    string
		wantErr error
	}{
		{"zero salt bumped once", zeroSalt, 1, strings.Repeat("00", 13) + "01" + strings.Repeat("00", 2), nil},
		{"wraps at ff", strings.Repeat("00", 13) + "ff" + "0000", 1, zeroSalt, nil},
		{"max bump", zeroSalt, 255, strings.Repeat("00", 13) + "ff" + "0000", nil},
		{"zero bumps", zeroSalt, 0, zeroSalt, nil},
		{"too many bumps", zeroSalt, 256, "", ErrInvalidIncrement},
		{"negative bumps", zeroSalt, -1, "", ErrInvalidIncrement},
		{"empty salt", "", 1, "", ErrInvalidInput},
		{"not hex", "zz" + zeroSalt[2:], 1, "", ErrInvalidInput},
		{"too short", "00112233", 1, "", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BumpIV(tt.salt, tt.bumps)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBumpIVTouchesOnlyByte13(t *testing.T) {
	salt := "000102030405060708090a0b0c0d0e0f"
	got, err := BumpIV(salt, 1)
	require.NoError(t, err)

	before, _ := hex.DecodeString(salt)
	after, _ := hex.DecodeString(got)
	require.Len(t, after, len(before))
	for i := range before {
		if i == ivBumpIndex {
			assert.Equal(t, before[i]+1, after[i])
			continue
		}
		assert.Equal(t, before[i], after[i], "byte %d changed", i)
	}
}

func TestParseBackup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", `{"version":3,"walletType":0,"iv":"00","encryptedEntropy":"00==00"}`, false},
		{"extra fields", `{"provider":"Kukai","version":3,"walletType":4,"pkh":"tz1abc","encryptedSeed":"x","iv":"00","encryptedEntropy":"a==b"}`, false},
		{"with BOM", "\xEF\xBB\xBF" + `{"version":3,"walletType":0}`, false},
		{"array", `[{"version":3}]`, true},
		{"string", `"hello"`, true},
		{"null", `null`, true},
		{"not json", `version=3`, true},
		{"version as string", `{"version":"3","walletType":0}`, false},
		{"walletType as bool", `{"version":3,"walletType":true}`, false},
		{"iv as number", `{"version":3,"walletType":0,"iv":5}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backup, err := ParseBackup([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedBackup)
				assert.Nil(t, backup)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, backup)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		walletType string
		want       int
		wantErr    error
	}{
		{"v3 type 0", "3", "0", 0, nil},
		{"v3 type 4", "3", "4", 4, nil},
		{"v3 float", "3.0", "4", 4, nil},
		{"v2", "2", "0", 0, ErrUnsupportedVersion},
		{"v4 bad type", "4", "1", 0, ErrUnsupportedVersion},
		{"missing version", "", "0", 0, ErrUnsupportedVersion},
		{"fraction version", "3.5", "0", 0, ErrUnsupportedVersion},
		{"type 1", "3", "1", 0, ErrUnsupportedWalletType},
		{"type 3", "3", "3", 0, ErrUnsupportedWalletType},
		{"missing type", "3", "", 0, ErrUnsupportedWalletType},
		{"version as string", `"3"`, "0", 0, ErrUnsupportedVersion},
		{"version null", "null", "0", 0, ErrUnsupportedVersion},
		{"version bool", "true", "0", 0, ErrUnsupportedVersion},
		{"version wraps 32 bits", "4294967299", "0", 0, ErrUnsupportedVersion},
		{"version huge float", "1e300", "0", 0, ErrUnsupportedVersion},
		{"type as string", "3", `"4"`, 0, ErrUnsupportedWalletType},
		{"type null", "3", "null", 0, ErrUnsupportedWalletType},
		{"type object", "3", `{"id":4}`, 0, ErrUnsupportedWalletType},
		{"type wraps 32 bits", "3", "4294967300", 0, ErrUnsupportedWalletType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backup := &model.KukaiBackup{
				Version:    json.RawMessage(tt.version),
				WalletType: json.RawMessage(tt.walletType),
			}
			got, err := Validate(backup)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveKeyAndIV(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		key1, iv1, err := DeriveKeyAndIV([]byte(testPassword), zeroSalt)
		require.NoError(t, err)
		key2, iv2, err := DeriveKeyAndIV([]byte(testPassword), zeroSalt)
		require.NoError(t, err)

		assert.Len(t, key1, scryptKeyLen)
		assert.Equal(t, key1, key2)
		assert.Equal(t, iv1, iv2)

		bumped, err := BumpIV(zeroSalt, 1)
		require.NoError(t, err)
		assert.Equal(t, bumped, hex.EncodeToString(iv1))
	})

	t.Run("invalid input", func(t *testing.T) {
		for name, tc := range map[string]struct {
			password string
			salt     string
		}{
			"empty password": {"", zeroSalt},
			"empty salt":     {testPassword, ""},
			"bad hex":        {testPassword, "xyz"},
			"short salt":     {testPassword, zeroSalt[:28]},
			"long salt":      {testPassword, zeroSalt + "00"},
		} {
			_, _, err := DeriveKeyAndIV([]byte(tc.password), tc.salt)
			assert.ErrorIs(t, err, ErrInvalidInput, name)
		}
	})
}

func TestDecryptSeedPhrase_RoundTrip(t *testing.T) {
	for _, walletType := range []int{WalletTypeFull, WalletTypeFundraiser} {
		backup, err := EncryptSeedPhrase(testMnemonic, []byte(testPassword), walletType)
		require.NoError(t, err)

		got, err := DecryptSeedPhrase(mustBackupJSON(t, backup), []byte(testPassword))
		require.NoError(t, err)
		assert.Equal(t, testMnemonic, got)
	}
}

func TestDecryptSeedPhrase_WordCountMatchesEntropy(t *testing.T) {
	for bits, words := range map[int]int{128: 12, 160: 15, 192: 18, 224: 21, 256: 24} {
		entropy, err := bip39.NewEntropy(bits)
		require.NoError(t, err)
		mnemonic, err := bip39.NewMnemonic(entropy)
		require.NoError(t, err)

		backup, err := EncryptSeedPhrase(mnemonic, []byte(testPassword), WalletTypeFundraiser)
		require.NoError(t, err)

		got, err := DecryptSeedPhrase(mustBackupJSON(t, backup), []byte(testPassword))
		require.NoError(t, err)
		assert.Equal(t, mnemonic, got)
		assert.Len(t, strings.Fields(got), words)
	}
}

func TestDecryptSeedPhrase_Idempotent(t *testing.T) {
	backup, err := EncryptSeedPhrase(testMnemonic, []byte(testPassword), WalletTypeFull)
	require.NoError(t, err)
	data := mustBackupJSON(t, backup)

	first, err := DecryptSeedPhrase(data, []byte(testPassword))
	require.NoError(t, err)
	second, err := DecryptSeedPhrase(data, []byte(testPassword))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecryptSeedPhrase_WrongPassword(t *testing.T) {
	backup, err := EncryptSeedPhrase(testMnemonic, []byte(testPassword), WalletTypeFull)
	require.NoError(t, err)

	got, err := DecryptSeedPhrase(mustBackupJSON(t, backup), []byte("wrong password"))
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Empty(t, got)
	assert.Equal(t, MsgDecryptFailed, UserMessage(err))
}

func TestDecryptSeedPhrase_TamperedTag(t *testing.T) {
	backup, err := EncryptSeedPhrase(testMnemonic, []byte(testPassword), WalletTypeFull)
	require.NoError(t, err)

	parts := strings.Split(backup.EncryptedEntropy, entropyDelimiter)
	tag, _ := hex.DecodeString(parts[1])
	tag[0] ^= 0x01
	backup.EncryptedEntropy = parts[0] + entropyDelimiter + hex.EncodeToString(tag)

	_, err = DecryptSeedPhrase(mustBackupJSON(t, backup), []byte(testPassword))
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestDecryptSeedPhrase_UnsupportedBackups(t *testing.T) {
	backup, err := EncryptSeedPhrase(testMnemonic, []byte(testPassword), WalletTypeFull)
	require.NoError(t, err)

	v2 := *backup
	v2.Version = json.RawMessage("2")
	_, err = DecryptSeedPhrase(mustBackupJSON(t, &v2), []byte(testPassword))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.Equal(t, MsgUnsupportedVersion, UserMessage(err))

	_, err = DecryptSeedPhrase(mustBackupJSON(t, &v2), []byte("wrong"))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	ledger := *backup
	ledger.WalletType = json.RawMessage("2")
	_, err = DecryptSeedPhrase(mustBackupJSON(t, &ledger), []byte(testPassword))
	assert.ErrorIs(t, err, ErrUnsupportedWalletType)
	assert.Equal(t, MsgUnsupportedWalletType, UserMessage(err))

	for name, tc := range map[string]struct {
		input   string
		wantErr error
	}{
		"version as string":  {`{"version":"2","walletType":0,"iv":"00","encryptedEntropy":"00==00"}`, ErrUnsupportedVersion},
		"walletType string":  {`{"version":3,"walletType":"4","iv":"00","encryptedEntropy":"00==00"}`, ErrUnsupportedWalletType},
		"walletType as null": {`{"version":3,"walletType":null,"iv":"00","encryptedEntropy":"00==00"}`, ErrUnsupportedWalletType},
	} {
		_, err := DecryptSeedPhrase([]byte(tc.input), []byte(testPassword))
		assert.ErrorIs(t, err, tc.wantErr, name)
	}
}

func TestDecryptSeedPhrase_MalformedCiphertextSkipsKDF(t *testing.T) {
	calls := 0
	orig := scryptKey
	scryptKey = func(password, salt []byte, N, r, p, keyLen int) ([]byte, error) {
		calls++
		return orig(password, salt, N, r, p, keyLen)
	}
	t.Cleanup(func() { scryptKey = orig })

	for name, encrypted := range map[string]string{
		"no delimiter":   "00112233",
		"two delimiters": "0011==2233==4455",
		"bad ciphertext": "zz==" + strings.Repeat("00", tagLen),
		"bad tag":        "0011==zz",
		"short tag":      "0011==0011",
		"empty":          "",
	} {
		backup := &model.KukaiBackup{
			Version:          json.RawMessage("3"),
			WalletType:       json.RawMessage("0"),
			IV:               zeroSalt,
			EncryptedEntropy: encrypted,
		}
		_, err := DecryptSeedPhrase(mustBackupJSON(t, backup), []byte(testPassword))
		assert.ErrorIs(t, err, ErrMalformedCiphertext, name)
		assert.Equal(t, MsgDecryptFailed, UserMessage(err), name)
	}
	assert.Zero(t, calls)
}

func TestDecryptSeedPhrase_InvalidEntropyLength(t *testing.T) {
	password := []byte(testPassword)
	backup := &model.KukaiBackup{
		Version:          json.RawMessage("3"),
		WalletType:       json.RawMessage("4"),
		IV:               zeroSalt,
		EncryptedEntropy: sealRaw(t, password, zeroSalt, make([]byte, 15)),
	}

	_, err := DecryptSeedPhrase(mustBackupJSON(t, backup), password)
	assert.ErrorIs(t, err, ErrInvalidEntropyLength)
}

func TestDecryptSeedPhrase_EmptyPassword(t *testing.T) {
	backup, err := EncryptSeedPhrase(testMnemonic, []byte(testPassword), WalletTypeFull)
	require.NoError(t, err)

	_, err = DecryptSeedPhrase(mustBackupJSON(t, backup), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, MsgDecryptFailed, UserMessage(err))
}

// Backup produced outside this package with scrypt(N=2^16, r=8, p=1) over the
// bumped iv and AES-256-GCM with that iv as a 16 byte nonce.
func TestDecryptSeedPhrase_KnownVector(t *testing.T) {
	backup := []byte(`{
		"version": 3,
		"walletType": 4,
		"iv": "0123456789abcdef0123456789abcdef",
		"encryptedEntropy": "672389a207224634c9f6f6f7c062e957==5f39cadc7414739d820326356ef94123"
	}`)
	want := "alpha deal scrub asthma idea logic bright thought alpha deal scrub autumn"

	got, err := DecryptSeedPhrase(backup, []byte("pw-kat"))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	fromEntropy, err := BuildMnemonic(bytes.Repeat([]byte{0x07}, 16))
	require.NoError(t, err)
	assert.Equal(t, want, fromEntropy)

	_, err = DecryptSeedPhrase(backup, []byte("pw-kat2"))
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestDecryptEntropy(t *testing.T) {
	password := []byte(testPassword)
	entropy := make([]byte, 16)
	for i := range entropy {
		entropy[i] = byte(i)
	}
	encrypted := sealRaw(t, password, zeroSalt, entropy)

	key, iv, err := DeriveKeyAndIV(password, zeroSalt)
	require.NoError(t, err)

	got, err := DecryptEntropy(encrypted, key, iv)
	require.NoError(t, err)
	assert.Equal(t, entropy, got)

	wrongKey := make([]byte, len(key))
	got, err = DecryptEntropy(encrypted, wrongKey, iv)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Nil(t, got)
}

func TestBuildMnemonic(t *testing.T) {
	got, err := BuildMnemonic(make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, got)

	for _, n := range []int{0, 8, 15, 17, 33} {
		_, err := BuildMnemonic(make([]byte, n))
		assert.ErrorIs(t, err, ErrInvalidEntropyLength, "%d bytes", n)
	}
}

func TestDecryptSeedPhrase_Concurrent(t *testing.T) {
	backup, err := EncryptSeedPhrase(testMnemonic, []byte(testPassword), WalletTypeFull)
	require.NoError(t, err)
	data := mustBackupJSON(t, backup)

	var wg sync.WaitGroup
	results := make([]string, 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = DecryptSeedPhrase(data, []byte(testPassword))
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, testMnemonic, results[i])
	}
}
