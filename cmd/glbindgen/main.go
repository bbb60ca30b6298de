package main

import (
	"log"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/griffnb/glbindgen/internal/console"
	"github.com/griffnb/glbindgen/internal/gen"
)

// Version of glbindgen.
const Version = "v0.1.0"

const (
	specFlag          = "spec"
	typeMapFlag       = "typemap"
	outputFlag        = "output"
	outputTypesFlag   = "outputTypes"
	profileFlag       = "profile"
	generatedTimeFlag = "generatedTime"
	quietFlag         = "quiet"
	debugFlag         = "debug"
)

var commonFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
	&cli.StringFlag{
		Name:    specFlag,
		Aliases: []string{"s"},
		Value:   "gl.xml",
		Usage:   "Registry document to translate",
	},
	&cli.StringFlag{
		Name:    typeMapFlag,
		Aliases: []string{"tm"},
		Usage:   "Native C type to Go type table, one 'native,target' pair per line. The built in table is used when empty",
	},
	&cli.StringFlag{
		Name:    profileFlag,
		Aliases: []string{"p"},
		Usage:   "API family profile (.yaml, .yml or .toml). GL defaults are used when empty",
	},
}

var generateFlags = append([]cli.Flag{
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./generated",
		Usage:   "Output directory for all the generated files. It is removed and recreated on every run",
	},
	&cli.StringFlag{
		Name:    outputTypesFlag,
		Aliases: []string{"ot"},
		Value:   "go,json",
		Usage:   "Output types of generated files like go,json,yaml",
	},
	&cli.BoolFlag{
		Name:  generatedTimeFlag,
		Usage: "Put the generation time into the header of generated Go files",
	},
}, commonFlags...)

// setupLogging applies the quiet and debug flags.
func setupLogging(ctx *cli.Context) {
	if ctx.Bool(quietFlag) {
		console.Logger = console.Quiet()
		pterm.DisableOutput()
	}
	if ctx.IsSet(debugFlag) {
		console.Logger.DebugLevel = 1
	}
}

func config(ctx *cli.Context) *gen.Config {
	return &gen.Config{
		SpecFile:    ctx.String(specFlag),
		TypeMapFile: ctx.String(typeMapFlag),
		ProfileFile: ctx.String(profileFlag),
		Debugger:    console.Logger,
	}
}

func generateAction(ctx *cli.Context) error {
	setupLogging(ctx)
	defer console.Logger.Sync()

	var outputTypes []string
	for _, t := range strings.Split(ctx.String(outputTypesFlag), ",") {
		if t = strings.TrimSpace(t); t != "" {
			outputTypes = append(outputTypes, t)
		}
	}
	if len(outputTypes) == 0 {
		return errors.New("no output types specified")
	}

	cfg := config(ctx)
	cfg.OutputDir = ctx.String(outputFlag)
	cfg.OutputTypes = outputTypes
	cfg.GeneratedTime = ctx.Bool(generatedTimeFlag)

	model, err := gen.New().Build(cfg)
	if err != nil {
		return err
	}

	printSummary(model)
	pterm.Success.Printf("Generated %s into %s\n", strings.Join(outputTypes, ","), cfg.OutputDir)
	return nil
}

func inspectAction(ctx *cli.Context) error {
	setupLogging(ctx)
	defer console.Logger.Sync()

	model, err := gen.New().Plan(config(ctx))
	if err != nil {
		return err
	}

	printSummary(model)
	printDiagnostics(model)
	return nil
}

func main() {
	app := cli.NewApp()
	app.Version = Version
	app.Usage = "Generate Go bindings from a GL style API registry."
	app.Commands = []*cli.Command{
		{
			Name:    "generate",
			Aliases: []string{"g"},
			Usage:   "Generate bindings and manifests",
			Action:  generateAction,
			Flags:   generateFlags,
		},
		{
			Name:    "inspect",
			Aliases: []string{"i"},
			Usage:   "Plan the registry and print a summary without writing files",
			Action:  inspectAction,
			Flags:   commonFlags,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
