package main

import (
	"fmt"
	"log"
	"os"

	"github.com/seitarof/gen-debug/internal/bound"
	"github.com/seitarof/gen-debug/internal/cli"
	"github.com/seitarof/gen-debug/internal/directive"
	"github.com/seitarof/gen-debug/internal/generator"
	"github.com/seitarof/gen-debug/internal/loader"
	"github.com/seitarof/gen-debug/internal/validate"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	l := loader.New()
	p := directive.New()
	v := validate.New()
	in := bound.New()
	f := generator.NewGoimportsFormatter()
	w := generator.NewFileWriter()
	g := generator.New(f, w)

	runner := cli.NewRunner(l, p, v, in, g, os.Stderr)
	if err := runner.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
