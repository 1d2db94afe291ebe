package cmd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/paw-chain/cpamm/cmd/ammd/cmd"
	"github.com/paw-chain/cpamm/x/amm/types"
)

var (
	tokenBContract = sdk.AccAddress([]byte("usdt_contract_______")).String()
	shareContract  = sdk.AccAddress([]byte("lpt_contract________")).String()
	owner          = sdk.AccAddress([]byte("owner_______________")).String()
	alice          = sdk.AccAddress([]byte("alice_______________")).String()
	bob            = sdk.AccAddress([]byte("bob_________________")).String()
)

type CLITestSuite struct {
	suite.Suite
	home string
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	s.home = s.T().TempDir()
}

// run executes ammd against the suite's home and returns stdout
func (s *CLITestSuite) run(args ...string) (string, error) {
	root := cmd.NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--home", s.home, "--log-level", "error"))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (s *CLITestSuite) mustRun(args ...string) string {
	out, err := s.run(args...)
	s.Require().NoError(err, "ammd %v", args)
	return out
}

func (s *CLITestSuite) decode(out string) map[string]interface{} {
	var m map[string]interface{}
	s.Require().NoError(json.Unmarshal([]byte(out), &m), out)
	return m
}

func (s *CLITestSuite) initPool() {
	s.mustRun("init", owner,
		"--token-b-contract", tokenBContract,
		"--share-token-contract", shareContract,
	)
}

func (s *CLITestSuite) TestInitWritesConfig() {
	s.initPool()

	_, err := os.Stat(filepath.Join(s.home, "config", "config.toml"))
	s.Require().NoError(err)

	// Contracts are read back from config.toml.
	cfg := s.decode(s.mustRun("query", "config"))
	config := cfg["config"].(map[string]interface{})
	s.Require().Equal(tokenBContract, config["token_b_contract"])
	s.Require().Equal(shareContract, config["share_token_contract"])
	s.Require().Equal(owner, config["owner"])

	_, err = s.run("init", owner)
	s.Require().ErrorIs(err, types.ErrAlreadyInitialized)
}

func (s *CLITestSuite) TestInitRequiresOwner() {
	_, err := s.run("init")
	s.Require().Error(err)
}

func (s *CLITestSuite) TestQueryBeforeInit() {
	_, err := s.run("query", "config")
	s.Require().ErrorIs(err, types.ErrNotInitialized)

	pool := s.decode(s.mustRun("query", "pool"))
	s.Require().Equal("0", pool["total_shares"])
}

func (s *CLITestSuite) TestEndToEnd() {
	s.initPool()

	s.mustRun("tokens", "fund", alice, "1000orai")
	s.mustRun("tokens", "fund", alice, "1000", "--contract", tokenBContract)
	s.mustRun("tokens", "approve", alice, "300")

	added := s.decode(s.mustRun("tx", "add-liquidity", alice, "100", "300"))
	s.Require().Equal("173", added["shares"])

	pool := s.decode(s.mustRun("query", "pool"))
	s.Require().Equal("100", pool["reserve_a"])
	s.Require().Equal("300", pool["reserve_b"])
	s.Require().Equal("173", pool["total_shares"])

	quote := s.decode(s.mustRun("query", "simulate-swap", types.DefaultDenomA, "10"))
	s.Require().Equal("27", quote["amount_out"])

	swapped := s.decode(s.mustRun("tx", "swap", alice, types.DefaultDenomA, "10", "--min-amount-out", "27"))
	s.Require().Equal("27", swapped["amount_out"])
	s.Require().Equal(types.DefaultDenomB, swapped["asset_out"])

	balance := s.decode(s.mustRun("tokens", "balance", alice))
	s.Require().Equal("727", balance["token_b"])
	s.Require().Equal("173", balance["shares"])
	native := balance["native"].(map[string]interface{})
	s.Require().Equal("890", native["amount"])

	shares := s.decode(s.mustRun("query", "shares", alice))
	s.Require().Equal("173", shares["balance"])

	_, err := s.run("tx", "remove-liquidity", alice, "173")
	s.Require().ErrorIs(err, types.ErrInsufficientAllowance)

	s.mustRun("tokens", "approve", alice, "173", "--contract", shareContract)
	removed := s.decode(s.mustRun("tx", "remove-liquidity", alice, "173"))
	s.Require().Equal("110", removed["amount_a"])
	s.Require().Equal("273", removed["amount_b"])

	pool = s.decode(s.mustRun("query", "pool"))
	s.Require().Equal("0", pool["total_shares"])
}

func (s *CLITestSuite) TestRejectedCallLeavesStateUnchanged() {
	s.initPool()
	s.mustRun("tokens", "fund", alice, "1000orai")

	// No allowance for token B.
	_, err := s.run("tx", "add-liquidity", alice, "100", "300")
	s.Require().ErrorIs(err, types.ErrInsufficientAllowance)

	balance := s.decode(s.mustRun("tokens", "balance", alice))
	native := balance["native"].(map[string]interface{})
	s.Require().Equal("1000", native["amount"])

	_, err = s.run("tx", "remove-liquidity", bob, "10")
	s.Require().Error(err)
}

func (s *CLITestSuite) TestSlippageGuard() {
	s.initPool()
	s.mustRun("tokens", "fund", alice, "1000orai")
	s.mustRun("tokens", "fund", alice, "1000", "--contract", tokenBContract)
	s.mustRun("tokens", "approve", alice, "300")
	s.mustRun("tx", "add-liquidity", alice, "100", "300")

	_, err := s.run("tx", "swap", alice, types.DefaultDenomA, "10", "--min-amount-out", "28")
	s.Require().ErrorIs(err, types.ErrSlippageExceeded)
}

func (s *CLITestSuite) TestYAMLOutput() {
	s.initPool()

	out := s.mustRun("query", "pool", "-o", "yaml")
	s.Require().Contains(out, "reserve_a:")
	s.Require().Contains(out, "total_shares:")
	s.Require().NotContains(out, "{")
}

func (s *CLITestSuite) TestExportImport() {
	s.initPool()
	s.mustRun("tokens", "fund", alice, "1000orai")
	s.mustRun("tokens", "fund", alice, "1000", "--contract", tokenBContract)
	s.mustRun("tokens", "approve", alice, "300")
	s.mustRun("tx", "add-liquidity", alice, "100", "300")

	exported := s.mustRun("export")
	genesisPath := filepath.Join(s.T().TempDir(), "genesis.json")
	s.Require().NoError(os.WriteFile(genesisPath, []byte(exported), 0o600))

	s.home = s.T().TempDir()
	s.mustRun("init", "--genesis", genesisPath)

	pool := s.decode(s.mustRun("query", "pool"))
	s.Require().Equal("100", pool["reserve_a"])
	s.Require().Equal("300", pool["reserve_b"])
	shares := s.decode(s.mustRun("query", "shares", alice))
	s.Require().Equal("173", shares["balance"])
	allowance := s.decode(s.mustRun("query", "allowance", alice))
	s.Require().Equal("300", allowance["allowance"])
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"non-integer amount", []string{"tx", "add-liquidity", alice, "1.5", "3"}},
		{"zero shares", []string{"tx", "remove-liquidity", alice, "0"}},
		{"bad sender", []string{"tx", "swap", "nobody", types.DefaultDenomA, "10"}},
		{"bad funds", []string{"tx", "swap", alice, types.DefaultDenomA, "10", "--funds", "ten"}},
		{"bad output", []string{"query", "pool", "-o", "xml"}},
		{"bad fee", []string{"query", "pool", "--fee-bps", "10001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := cmd.NewRootCmd()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs(append(tt.args, "--home", t.TempDir()))
			require.Error(t, root.Execute())
		})
	}
}
