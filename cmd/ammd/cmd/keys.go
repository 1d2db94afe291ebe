package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/go-bip39"
	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/app"
)

const (
	flagMnemonicLength = "mnemonic-length"
	flagAccount        = "account"
	flagIndex          = "index"
)

// KeyOutput describes a derived account
type KeyOutput struct {
	Address  string `json:"address"`
	PubKey   string `json:"pubkey"`
	HDPath   string `json:"hd_path"`
	Mnemonic string `json:"mnemonic,omitempty"`
}

// KeysCmd derives account addresses from BIP39 mnemonics. Keys are never
// stored; the CLI identifies callers by address.
func KeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate and recover account addresses with BIP39 mnemonics",
		RunE:  runGroup,
	}
	cmd.PersistentFlags().Uint32(flagAccount, 0, "Account number for HD derivation")
	cmd.PersistentFlags().Uint32(flagIndex, 0, "Address index number for HD derivation")
	cmd.AddCommand(keysNewCmd(), keysDeriveCmd())
	return cmd
}

func keysNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new mnemonic and print its address",
		Long: `Generate a BIP39 mnemonic from crypto/rand entropy and print the address it
derives at m/44'/118'/account'/0/index.

WARNING: Keep your mnemonic phrase in a secure location. Anyone with access to your
mnemonic controls the address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mnemonicLength, _ := cmd.Flags().GetInt(flagMnemonicLength)
			mnemonic, err := NewMnemonic(mnemonicLength)
			if err != nil {
				return err
			}
			out, err := deriveFromFlags(cmd, mnemonic)
			if err != nil {
				return err
			}
			out.Mnemonic = mnemonic
			return printOutput(cmd, out)
		},
	}
	cmd.Flags().Int(flagMnemonicLength, 24, "Mnemonic length (12 or 24 words)")
	return cmd
}

func keysDeriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive [mnemonic]",
		Short: "Print the address derived from an existing mnemonic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := deriveFromFlags(cmd, args[0])
			if err != nil {
				return err
			}
			return printOutput(cmd, out)
		},
	}
}

func deriveFromFlags(cmd *cobra.Command, mnemonic string) (KeyOutput, error) {
	account, _ := cmd.Flags().GetUint32(flagAccount)
	index, _ := cmd.Flags().GetUint32(flagIndex)
	return DeriveKey(mnemonic, account, index)
}

// NewMnemonic generates a 12 or 24 word BIP39 mnemonic
func NewMnemonic(words int) (string, error) {
	// 12 words = 128 bits, 24 words = 256 bits
	var entropySize int
	switch words {
	case 12:
		entropySize = 128 / 8
	case 24:
		entropySize = 256 / 8
	default:
		return "", fmt.Errorf("mnemonic length must be 12 or 24 words")
	}

	entropy := make([]byte, entropySize)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to generate secure entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// DeriveKey derives the secp256k1 account at m/44'/118'/account'/0/index
func DeriveKey(mnemonic string, account, index uint32) (KeyOutput, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return KeyOutput{}, fmt.Errorf("invalid mnemonic")
	}

	hdPath := hd.CreateHDPath(app.CoinType, account, index).String()
	derived, err := hd.Secp256k1.Derive()(mnemonic, "", hdPath)
	if err != nil {
		return KeyOutput{}, fmt.Errorf("failed to derive key: %w", err)
	}
	privKey := &secp256k1.PrivKey{Key: derived}
	pubKey := privKey.PubKey()

	return KeyOutput{
		Address: sdk.AccAddress(pubKey.Address()).String(),
		PubKey:  base64.StdEncoding.EncodeToString(pubKey.Bytes()),
		HDPath:  hdPath,
	}, nil
}
