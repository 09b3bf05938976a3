/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/vcr"
	"github.com/nuts-foundation/didholder/vcr/credential"
	"github.com/nuts-foundation/didholder/vcr/holder"
	"github.com/nuts-foundation/didholder/vcr/openid4vci"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testCredential = credential.Credential{
	ID:                "c1",
	Type:              []string{"VerifiableCredential", "NaturalPersonCredential"},
	Issuer:            "did:web:land.moi.gov.tw",
	IssuanceDate:      "2023-11-14T22:13:20.000Z",
	ExpirationDate:    "2023-11-14T23:13:20.000Z",
	CredentialSubject: map[string]interface{}{"name": "Alice", "birthDate": "1990-01-01"},
}

func TestFlagSet(t *testing.T) {
	flags := FlagSet()

	var keys []string
	flags.VisitAll(func(flag *pflag.Flag) {
		keys = append(keys, flag.Name)
	})
	sort.Strings(keys)

	assert.Equal(t, []string{
		ConfIssuerPorts,
		ConfConfigTTL,
		ConfCredentialTypes,
		ConfRetries,
	}, keys)
}

func TestConfigInjection(t *testing.T) {
	serverCfg := core.NewServerConfig()
	t.Setenv("DIDHOLDER_VCR_ISSUERPORTS", "issuer.example.com=8443,zuvi.io=5002")
	t.Setenv("DIDHOLDER_VCR_OPENID4VCI_CONFIGTTL", "10m")
	t.Setenv("DIDHOLDER_VCR_OPENID4VCI_RETRIES", "5")
	flags := core.FlagSet()
	flags.AddFlagSet(FlagSet())
	require.NoError(t, serverCfg.Load(flags))
	engine := vcr.NewVCRInstance(nil, nil, nil).(core.Injectable)

	require.NoError(t, serverCfg.InjectIntoEngine(engine))

	cfg := engine.Config().(*vcr.Config)
	assert.Equal(t, []string{"issuer.example.com=8443", "zuvi.io=5002"}, cfg.IssuerPorts)
	assert.Equal(t, 10*time.Minute, cfg.OpenID4VCI.ConfigTTL)
	assert.Equal(t, uint(5), cfg.OpenID4VCI.Retries)
	assert.Equal(t, openid4vci.DefaultCredentialTypes(), cfg.OpenID4VCI.CredentialTypes)
}

type cmdContext struct {
	wallet  *vcr.MockWallet
	cmd     *cobra.Command
	buf     *bytes.Buffer
	started *bool
}

func newCmdContext(t *testing.T, args ...string) cmdContext {
	color.NoColor = true
	now = func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() {
		now = time.Now
	})
	ctrl := gomock.NewController(t)
	wallet := vcr.NewMockWallet(ctrl)
	instance := vcr.NewMockVCR(ctrl)
	instance.EXPECT().Wallet().Return(wallet).AnyTimes()
	started := false
	command := Cmd(func(fn func() error) error {
		started = true
		return fn()
	}, instance)
	buf := new(bytes.Buffer)
	command.SetOut(buf)
	command.SetErr(buf)
	command.SetArgs(args)
	return cmdContext{wallet: wallet, cmd: command, buf: buf, started: &started}
}

func TestCmd_List(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newCmdContext(t, "list")
		ctx.wallet.EXPECT().List().Return([]credential.Credential{testCredential})

		require.NoError(t, ctx.cmd.Execute())

		assert.True(t, *ctx.started)
		assert.Contains(t, ctx.buf.String(), "c1  NaturalPersonCredential  expired")
		assert.Contains(t, ctx.buf.String(), "issuer: did:web:land.moi.gov.tw")
	})
	t.Run("empty wallet", func(t *testing.T) {
		ctx := newCmdContext(t, "list")
		ctx.wallet.EXPECT().List().Return(nil)

		require.NoError(t, ctx.cmd.Execute())

		assert.Contains(t, ctx.buf.String(), "The wallet is empty")
	})
}

func TestCmd_Show(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newCmdContext(t, "show", "c1")
		ctx.wallet.EXPECT().Get("c1").Return(testCredential, nil)

		require.NoError(t, ctx.cmd.Execute())

		assert.Contains(t, ctx.buf.String(), `"id": "c1"`)
	})
	t.Run("not found", func(t *testing.T) {
		ctx := newCmdContext(t, "show", "c2")
		ctx.wallet.EXPECT().Get("c2").Return(credential.Credential{}, holder.ErrNotFound)

		err := ctx.cmd.Execute()

		assert.ErrorIs(t, err, holder.ErrNotFound)
	})
	t.Run("missing argument", func(t *testing.T) {
		ctx := newCmdContext(t, "show")

		assert.Error(t, ctx.cmd.Execute())
		assert.False(t, *ctx.started)
	})
}

func TestCmd_Add(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newCmdContext(t, "add", " eyJ.token.sig\n")
		ctx.wallet.EXPECT().AddToken(gomock.Any(), "eyJ.token.sig").Return(testCredential, nil)

		require.NoError(t, ctx.cmd.Execute())

		assert.Contains(t, ctx.buf.String(), "Added credential c1 (NaturalPersonCredential)")
	})
	t.Run("parse failure", func(t *testing.T) {
		ctx := newCmdContext(t, "add", "garbage")
		ctx.wallet.EXPECT().AddToken(gomock.Any(), "garbage").Return(credential.Credential{}, holder.ErrCredentialParseFailed)

		err := ctx.cmd.Execute()

		assert.ErrorIs(t, err, holder.ErrCredentialParseFailed)
	})
}

func TestCmd_Remove(t *testing.T) {
	ctx := newCmdContext(t, "remove", "c1")
	ctx.wallet.EXPECT().Remove(gomock.Any(), "c1").Return(nil)

	require.NoError(t, ctx.cmd.Execute())

	assert.Contains(t, ctx.buf.String(), "Credential c1 removed")
}

func TestCmd_Clear(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newCmdContext(t, "clear")
		ctx.wallet.EXPECT().Clear(gomock.Any()).Return(nil)

		require.NoError(t, ctx.cmd.Execute())

		assert.Contains(t, ctx.buf.String(), "All credentials removed")
	})
	t.Run("error", func(t *testing.T) {
		ctx := newCmdContext(t, "clear")
		ctx.wallet.EXPECT().Clear(gomock.Any()).Return(errors.New("disk full"))

		err := ctx.cmd.Execute()

		assert.EqualError(t, err, "unable to clear wallet: disk full")
	})
}

func TestCmd_Export(t *testing.T) {
	t.Run("to stdout", func(t *testing.T) {
		ctx := newCmdContext(t, "export", "--format", "YAML")
		ctx.wallet.EXPECT().Export(holder.YAMLExportFormat).Return([]byte("- id: c1"), nil)

		require.NoError(t, ctx.cmd.Execute())

		assert.Equal(t, "- id: c1\n", ctx.buf.String())
	})
	t.Run("to file", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "export.json")
		ctx := newCmdContext(t, "export", "-o", output)
		ctx.wallet.EXPECT().Export(holder.JSONExportFormat).Return([]byte("[]"), nil)

		require.NoError(t, ctx.cmd.Execute())

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})
	t.Run("unsupported format", func(t *testing.T) {
		ctx := newCmdContext(t, "export", "--format", "xml")
		ctx.wallet.EXPECT().Export("xml").Return(nil, errors.New("unsupported export format: xml"))

		assert.EqualError(t, ctx.cmd.Execute(), "unsupported export format: xml")
	})
}

func TestCmd_Share(t *testing.T) {
	shared := holder.SharedCredential{ID: "c1", CredentialSubject: map[string]interface{}{"name": "Alice", "birthDate": "1990-01-01"}}
	t.Run("selected fields", func(t *testing.T) {
		ctx := newCmdContext(t, "share", "c1", "--field", "name", "--field", "birthDate")
		ctx.wallet.EXPECT().Share("c1", []string{"name", "birthDate"}).Return(shared, "didholder://share?data=abc", nil)

		require.NoError(t, ctx.cmd.Execute())

		assert.Contains(t, ctx.buf.String(), "Disclosed fields: birthDate, name")
		assert.Contains(t, ctx.buf.String(), "didholder://share?data=abc")
	})
	t.Run("with QR code", func(t *testing.T) {
		ctx := newCmdContext(t, "share", "c1", "--qr")
		ctx.wallet.EXPECT().Share("c1", nil).Return(shared, "didholder://share?data=abc", nil)

		require.NoError(t, ctx.cmd.Execute())

		assert.Greater(t, len(ctx.buf.String()), len("didholder://share?data=abc")*2)
	})
}

func TestCmd_Verify(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ctx := newCmdContext(t, "verify", "c1")
		ctx.wallet.EXPECT().Verify(gomock.Any(), "c1").Return(openid4vci.VerificationResult{Valid: true, Message: "credential is valid"}, nil)

		require.NoError(t, ctx.cmd.Execute())

		assert.Contains(t, ctx.buf.String(), "VALID: credential is valid")
	})
	t.Run("invalid", func(t *testing.T) {
		ctx := newCmdContext(t, "verify", "c1")
		ctx.wallet.EXPECT().Verify(gomock.Any(), "c1").Return(openid4vci.VerificationResult{Message: "credential expired on 2023-11-14T23:13:20.000Z"}, nil)

		require.NoError(t, ctx.cmd.Execute())

		assert.Contains(t, ctx.buf.String(), "INVALID: credential expired on 2023-11-14T23:13:20.000Z")
	})
}
