package main

import (
	"flag"
	"fmt"
	"os"

	"campusd/internal/di"
	"campusd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config/config.yaml", "path to configuration file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug logging")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "campusd: %v\n", err)
		os.Exit(1)
	}
}
