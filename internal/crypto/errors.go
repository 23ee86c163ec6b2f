package crypto

import "errors"

// Sentinel errors, match with errors.Is
var (
	ErrMalformedBackup       = errors.New("malformed backup file")
	ErrUnsupportedVersion    = errors.New("unsupported backup version")
	ErrUnsupportedWalletType = errors.New("unsupported wallet type")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidIncrement      = errors.New("invalid incremention")
	ErrMalformedCiphertext   = errors.New("malformed ciphertext")
	ErrAuthenticationFailed  = errors.New("authentication failed")
	ErrInvalidEntropyLength  = errors.New("invalid entropy length")
)

// User-facing messages. Decryption failures are collapsed into one message
// so callers can't tell a wrong password from a corrupt ciphertext,
// a missing password or a bad salt.
const (
	MsgDecryptFailed         = "Failed to decrypt entropy. Make sure the password is correct"
	MsgUnsupportedVersion    = "Only files of version 3 can be processed"
	MsgUnsupportedWalletType = "Cannot reveal seed phrase for this wallet type"
	MsgMalformedBackup       = "Backup file is not a valid Kukai backup"
)

// UserMessage returns the message to show for err
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedVersion):
		return MsgUnsupportedVersion
	case errors.Is(err, ErrUnsupportedWalletType):
		return MsgUnsupportedWalletType
	case errors.Is(err, ErrMalformedBackup):
		return MsgMalformedBackup
	case errors.Is(err, ErrMalformedCiphertext),
		errors.Is(err, ErrAuthenticationFailed),
		errors.Is(err, ErrInvalidEntropyLength),
		errors.Is(err, ErrInvalidIncrement),
		errors.Is(err, ErrInvalidInput):
		return MsgDecryptFailed
	default:
		return err.Error()
	}
}

// Kind returns a short stable name of the error kind, safe for logs
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedBackup):
		return "MalformedBackup"
	case errors.Is(err, ErrUnsupportedVersion):
		return "UnsupportedVersion"
	case errors.Is(err, ErrUnsupportedWalletType):
		return "UnsupportedWalletType"
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, ErrInvalidIncrement):
		return "InvalidIncrement"
	case errors.Is(err, ErrMalformedCiphertext):
		return "MalformedCiphertext"
	case errors.Is(err, ErrAuthenticationFailed):
		return "AuthenticationFailed"
	case errors.Is(err, ErrInvalidEntropyLength):
		return "InvalidEntropyLength"
	default:
		return "Internal"
	}
}
