package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rook-computer/promptcanvas/internal/app"
	"github.com/rook-computer/promptcanvas/internal/config"
	"github.com/rook-computer/promptcanvas/internal/display"
	"github.com/rook-computer/promptcanvas/internal/export"
	"github.com/rook-computer/promptcanvas/internal/generate"
	"github.com/rook-computer/promptcanvas/internal/render"
	"github.com/rook-computer/promptcanvas/internal/state"
)

const (
	resetCommand = "/reset"
	quitCommand  = "/quit"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin))
}

// run is the whole program; it returns the process exit code so deferred
// cleanup always happens before main exits.
func run(args []string, stdin io.Reader) int {
	defaults, err := config.FromEnv(config.Config{
		Delay:   generate.DefaultDelay,
		Steps:   generate.DefaultSteps,
		OutDir:  ".",
		Display: config.DisplayNone,
	})
	if err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	// Flags
	flags := flag.NewFlagSet("promptcanvas", flag.ContinueOnError)
	debug := flags.Bool("debug", false, "enable debug logging to -debug-log")
	debugLog := flags.String("debug-log", "./promptcanvas-debug.log", "debug log file used with -debug")
	prompt := flags.String("prompt", "", "generate once for this prompt and exit; when empty, prompts are read from stdin one per line")
	steps := flags.Int("steps", defaults.Steps, "sampling steps, kept for parity with a real backend (does not change the image); also "+config.EnvSteps)
	delay := flags.Duration("delay", defaults.Delay, "simulated generation time; also "+config.EnvDelay)
	outDir := flags.String("out", defaults.OutDir, "directory generated PNGs are saved to; also "+config.EnvOutDir)
	displayMode := flags.String("display", defaults.Display, "where to show results: none | fb; also "+config.EnvDisplay)
	fbDevice := flags.String("fb-device", display.DefaultDevice, "framebuffer device used with -display fb")
	stdioLog := flags.String("stdio-log", defaults.StdioLog, "redirect stdout+stderr (including panics) to this file; also "+config.EnvStdioLog)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg := config.Config{Delay: *delay, Steps: *steps, OutDir: *outDir, Display: strings.ToLower(*displayMode), StdioLog: *stdioLog}
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	if cfg.StdioLog != "" {
		if err := redirectStdIO(cfg.StdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile(*debugLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	store.Listen(printStatus)

	renderer := render.NewKeywordRenderer(logger)
	generator := generate.New(renderer, cfg.Delay)
	generator.Logger = logger

	var out display.Display = display.NoopDisplay{}
	if cfg.Display == config.DisplayFramebuffer {
		fbDisplay := display.NewFBDisplay(*fbDevice)
		fbDisplay.Logger = logger
		fbDisplay.Console = true
		out = fbDisplay
	}

	controller := app.New(store, generator, out)
	controller.Logger = logger
	if err := controller.Start(ctx); err != nil {
		fmt.Println("display start error:", err)
		return 1
	}
	defer func() {
		if err := controller.Stop(); err != nil {
			fmt.Println("stop error:", err)
		}
	}()

	if *prompt != "" {
		if err := generateOnce(ctx, controller, *prompt, cfg); err != nil {
			return 1
		}
		return 0
	}

	fmt.Printf("type a description and press enter (%s, %s)\n", resetCommand, quitCommand)
	readPrompts(ctx, stdin, controller, cfg)
	return 0
}

func generateOnce(ctx context.Context, controller *app.Controller, prompt string, cfg config.Config) error {
	if err := controller.Submit(ctx, prompt, cfg.Steps); err != nil {
		return err
	}
	return saveResult(controller.Store, cfg.OutDir)
}

// readPrompts submits one prompt per input line until EOF, /quit or ctx ends.
func readPrompts(ctx context.Context, in io.Reader, controller *app.Controller, cfg config.Config) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return
		case line, ok = <-lines:
			if !ok {
				return
			}
		}

		switch strings.TrimSpace(line) {
		case quitCommand:
			return
		case resetCommand:
			controller.Reset()
			continue
		}

		err := controller.Submit(ctx, line, cfg.Steps)
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return
		}
		if err == nil {
			if err := saveResult(controller.Store, cfg.OutDir); err != nil {
				fmt.Println("save error:", err)
			}
		}
	}
}

func saveResult(store *state.Store, dir string) error {
	img, ok := store.Snapshot().Result()
	if !ok {
		return errors.New("no result to save")
	}
	path, err := export.Save(dir, img, time.Now())
	if err != nil {
		return err
	}
	fmt.Println("saved", path)
	return nil
}

func printStatus(s state.State) {
	switch s.Phase {
	case state.IDLE:
		fmt.Println("ready")
	case state.LOADING:
		fmt.Printf("generating %q (steps=%d)...\n", s.Prompt, s.Steps)
	case state.RESULT:
		fmt.Println("done")
	case state.ERROR:
		message, _ := s.Error()
		fmt.Println("error:", message)
	}
}
