package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/safeharbor/harbor/cmd/harbord/app"
	"github.com/safeharbor/harbor/commands/server"
	"github.com/safeharbor/harbor/crypto"
	"github.com/safeharbor/harbor/harbortest/assert"
	"github.com/safeharbor/harbor/tmtest"
	"github.com/tendermint/tendermint/libs/log"
)

func TestDeriveCmd(t *testing.T) {
	maker := crypto.GenPrivKeyEd25519().PublicKey().Address()
	want, err := app.DeriveEscrow(maker.String(), 3, "USDC")
	assert.Nil(t, err)

	var out bytes.Buffer
	err = deriveCmd(&out, []string{"-maker", maker.String(), "-seed", "3", "-mint", "USDC"})
	assert.Nil(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, 3, len(lines))
	if !strings.Contains(lines[0], want.Record.String()) {
		t.Fatalf("escrow address missing: %q", lines[0])
	}
	if !strings.Contains(lines[1], want.Vault.String()) {
		t.Fatalf("vault address missing: %q", lines[1])
	}
	if !strings.HasPrefix(lines[0], "escrow") || !strings.HasPrefix(lines[2], "bump") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	err = deriveCmd(&out, []string{"-seed", "3", "-mint", "USDC"})
	if err == nil {
		t.Fatal("maker is required")
	}
}

func TestExampleConfig(t *testing.T) {
	conf, err := server.LoadConfig("harbord.toml")
	assert.Nil(t, err)
	assert.Equal(t, "localhost:26660", conf.MetricsAddr)
	assert.Equal(t, server.DefaultConfig().Bind, conf.Bind)
}

func TestStartWithTendermint(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Tendermint integration test")
	}

	home, cleanup := tmtest.InitHome(t)
	defer cleanup()

	logger := log.NewNopLogger()
	err := server.InitCmd(app.GenInitOptions, logger, home, []string{"USDC", crypto.GenPrivKeyEd25519().PublicKey().Address().String()})
	assert.Nil(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		// tendermint connects to the default proxy_app address
		done <- server.Run(ctx, app.GenerateApp, logger, home, []string{"-bind", "tcp://127.0.0.1:26658"})
	}()
	defer tmtest.RunTendermint(ctx, t, home)()

	select {
	case err := <-done:
		assert.Nil(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("application did not stop")
	}
}
