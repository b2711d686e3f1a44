package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/cmd/harbord/app"
	"github.com/safeharbor/harbor/commands"
	"github.com/safeharbor/harbor/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".harbor")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("harbord")
	fmt.Println("         Two party escrow node")
	fmt.Println("")
	fmt.Println("help     Print this message")
	fmt.Println("init     Initialize app options in genesis file")
	fmt.Println("start    Run the abci server")
	fmt.Println("validate Check the app state of genesis files")
	fmt.Println("derive   Print the escrow and vault addresses of a maker")
	fmt.Println("testgen  Write example encodings to a directory")
	fmt.Println("version  Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.harbor")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "harbor")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(app.Initializers(), rest)
	case "derive":
		err = deriveCmd(os.Stdout, rest)
	case "testgen":
		err = commands.TestGenCmd(app.Examples(), rest)
	case "version":
		fmt.Println(harbor.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

// deriveCmd prints the record and vault address of an escrow without
// connecting to a node.
func deriveCmd(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("derive", flag.ContinueOnError)
	var (
		maker = fs.String("maker", "", "maker address")
		seed  = fs.Uint64("seed", 0, "escrow seed")
		mint  = fs.String("mint", "", "deposit mint symbol or address")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	addrs, err := app.DeriveEscrow(*maker, *seed, *mint)
	if err != nil {
		return err
	}
	for _, a := range []struct {
		name string
		addr harbor.Address
	}{
		{"escrow", addrs.Record},
		{"vault", addrs.Vault},
	} {
		b32, err := a.addr.Bech32()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-7s %s %s\n", a.name, a.addr, b32)
	}
	fmt.Fprintf(out, "%-7s %d\n", "bump", addrs.Bump)
	return nil
}
