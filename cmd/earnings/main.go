package main

import (
	"context"

	"github.com/akolanti/EarningsAPI/internal/bootstrap"
	"github.com/akolanti/EarningsAPI/internal/cli"
	"github.com/akolanti/EarningsAPI/internal/config"
)

func main() {
	config.LoadDotEnv()
	cli.Execute(func(ctx context.Context) (cli.Summariser, error) {
		driver, err := bootstrap.NewDriver(ctx)
		if err != nil {
			return nil, err
		}
		return driver, nil
	})
}
