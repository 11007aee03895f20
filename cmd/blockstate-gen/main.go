// Command blockstate-gen compiles a block-state definition file and writes
// the compiled snapshot consumed at process startup, printing a summary of
// the assigned state space.
package main

import (
	"fmt"
	"os"

	"github.com/justtaldevelops/blockstate"
	"github.com/justtaldevelops/blockstate/definition"
	"github.com/justtaldevelops/blockstate/states"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := "blockstate-gen.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		logrus.Fatalf("Load config: %v.", err)
	}
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	src, err := os.ReadFile(cfg.Definition)
	if err != nil {
		logrus.Fatalf("Read definition: %v.", err)
	}
	def, err := definition.Parse(src)
	if err != nil {
		logrus.Fatalf("Parse %s: %v.", cfg.Definition, err)
	}
	reg, err := states.Compile(def)
	if err != nil {
		logrus.Fatalf("Compile %s: %v.", cfg.Definition, err)
	}

	fmt.Printf("Compiled %s\n", cfg.Definition)
	fmt.Printf("  Properties: %d enumerated + builtin bool\n", len(reg.Properties()))
	fmt.Printf("  Blocks:     %d\n", len(reg.Blocks()))
	fmt.Printf("  States:     %d (max state id %d)\n\n", uint64(reg.MaxState())+1, reg.MaxState())
	for _, block := range reg.Blocks() {
		first, last := block.Range()
		fmt.Printf("  %6d..%-6d %s (default %d)\n", first, last, block.ID(), block.DefaultState())
	}

	if cfg.Snapshot == "" {
		return
	}
	f, err := os.Create(cfg.Snapshot)
	if err != nil {
		logrus.Fatalf("Create snapshot: %v.", err)
	}
	if err := blockstate.WriteSnapshot(f, def); err != nil {
		_ = f.Close()
		logrus.Fatalf("Write snapshot: %v.", err)
	}
	if err := f.Close(); err != nil {
		logrus.Fatalf("Close snapshot: %v.", err)
	}
	logrus.Infof("Wrote snapshot to %s.", cfg.Snapshot)
}
