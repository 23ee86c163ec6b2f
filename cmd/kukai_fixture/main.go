// One-off: encrypt a known mnemonic into a Kukai v3 backup, for testing recovery.
// Usage: FIXTURE_MNEMONIC="..." FIXTURE_PASSWORD=dev go run ./cmd/kukai_fixture
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlexZinkM/kukai-seed/internal/crypto"

	"github.com/kelseyhightower/envconfig"
)

type fixtureConfig struct {
	Mnemonic   string `envconfig:"FIXTURE_MNEMONIC" required:"true"`
	Password   string `envconfig:"FIXTURE_PASSWORD" required:"true"`
	WalletType int    `envconfig:"FIXTURE_WALLET_TYPE" default:"4"`
	Pkh        string `envconfig:"FIXTURE_PKH"`
	Out        string `envconfig:"FIXTURE_OUT"` // stdout if empty
}

func main() {
	var cfg fixtureConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	password := []byte(cfg.Password)
	defer clear(password)

	backup, err := crypto.EncryptSeedPhrase(cfg.Mnemonic, password, cfg.WalletType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	backup.Pkh = cfg.Pkh

	if cfg.Out != "" {
		if err := crypto.WriteBackupFile(cfg.Out, backup); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	out, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
