package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/admin"
	"github.com/dmitrijs2005/taskboard/internal/server"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	command := "help"
	if len(os.Args) > 1 && !strings.HasPrefix(os.Args[1], "-") {
		command = os.Args[1]
	}

	if err := run(ctx, cfg, command); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}

func run(ctx context.Context, cfg *config.Config, command string) error {
	if err := admin.CheckDSN(cfg.DatabaseDSN); err != nil {
		return err
	}

	storage, err := server.OpenStorage(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer storage.Close()

	accounts, err := services.NewAccountService(storage.Runner, storage.Manager,
		auth.NewHasher(cfg.BcryptCost), auth.NewCodec([]byte(cfg.SecretKey)), cfg)
	if err != nil {
		return err
	}

	return admin.NewApp(accounts, os.Stdin, os.Stdout).Run(ctx, command)
}
