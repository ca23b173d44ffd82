package main

import (
	"fmt"
	"os"

	"github.com/kobzarvs/qtext/internal/app"
	"github.com/kobzarvs/qtext/internal/config"
	"github.com/kobzarvs/qtext/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "qtext:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	debug := false
	if len(args) > 0 && args[0] == "--debug" {
		debug = true
		args = args[1:]
	}
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	if err := logger.Init(debug); err != nil {
		fmt.Fprintln(os.Stderr, "qtext: logging disabled:", err)
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		return err
	}
	return app.New(args, cfg, langs).Run()
}
