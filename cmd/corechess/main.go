// Command corechess runs the engine's UCI loop over stdin/stdout.
package main

import (
	"flag"
	"os"

	"github.com/pkg/profile"

	"github.com/chego-labs/corechess/internal/config"
	"github.com/chego-labs/corechess/internal/corelog"
	"github.com/chego-labs/corechess/internal/uci"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to corechess.toml")
		cpuprofile = flag.Bool("cpuprofile", false, "write a CPU profile to ./cpu.pprof")
	)
	flag.Parse()

	if *cpuprofile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		corelog.Engine.Errorf("loading config: %v", err)
	}
	corelog.SetLevel(cfg.LogLevel)

	h := uci.New(os.Stdin, os.Stdout, cfg.HashMB)
	os.Exit(h.Run())
}
