package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/metinatakli/ticketmaster/internal/app"
	"github.com/metinatakli/ticketmaster/internal/domain"
)

func main() {
	err := app.Run(os.Args[1:])
	if errors.Is(err, app.ErrUsage) {
		os.Exit(2)
	}

	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, domain.ErrConnectivity) {
			fmt.Fprintln(os.Stderr, "Make sure PostgreSQL is running and accepting connections.")
		}
		os.Exit(1)
	}
}
