package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/rain/audio"
	"github.com/lixenwraith/rain/core"
	"github.com/lixenwraith/rain/engine"
	"github.com/lixenwraith/rain/parameter"
	"github.com/lixenwraith/rain/render"
	"github.com/lixenwraith/rain/terminal"
	"github.com/lixenwraith/rain/vmath"
)

var (
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	backendFlag   = flag.String("backend", "ansi", "Terminal backend: ansi, tcell")
	seedFlag      = flag.Uint64("seed", 0, "Random seed, 0 picks one from the clock")
	soundFlag     = flag.Bool("sound", false, "Play rain ambience")
	debugFlag     = flag.Bool("debug", false, "Write debug log to logs/rain.log")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// handleCrash is replaced in tests so a recovered panic does not exit the test binary
var handleCrash = core.HandleCrash

func run() int {
	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	colorMode := terminal.ParseColorMode(*colorModeFlag)
	term, err := newTerminal(*backendFlag, colorMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rain: %v\n", err)
		return 1
	}
	return runTerminal(term, animate)
}

// runTerminal initializes term, runs body on it and restores it, returning the process exit code.
// The terminal stays registered for crash recovery after Init, so the recover below always finds it.
func runTerminal(term terminal.Terminal, body func(terminal.Terminal) error) (code int) {
	// Panic recovery: restore the terminal even if the animation crashes
	defer func() {
		if r := recover(); r != nil {
			handleCrash(r)
			code = 1
		}
	}()

	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "rain: init terminal: %v\n", err)
		return 1
	}
	core.SetCrashTerminal(term)

	runErr := body(term)
	finiErr := term.Fini()

	if err := errors.Join(runErr, finiErr); err != nil {
		fmt.Fprintf(os.Stderr, "rain: %v\n", err)
		return 1
	}
	return 0
}

func newTerminal(backend string, colorMode terminal.ColorMode) (terminal.Terminal, error) {
	switch backend {
	case "ansi", "":
		return terminal.New(colorMode), nil
	case "tcell":
		return terminal.NewTcell(nil, colorMode)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// animate runs the render loop on an initialized terminal until quit, signal or I/O failure
func animate(term terminal.Terminal) error {
	cols, rows, err := term.Size()
	if err != nil {
		return fmt.Errorf("query size: %w", err)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("rain: %dx%d, %s, seed %d", cols, rows, term.ColorMode(), seed)

	renderer := render.NewRenderer(term, vmath.NewFastRand(seed), cols, rows)
	loop := engine.NewLoop(term, renderer, parameter.FrameInterval)

	if *soundFlag {
		ambience := audio.NewAmbience(seed ^ 0x9E3779B97F4A7C15)
		if err := ambience.Start(); err != nil {
			log.Printf("rain: audio start failed: %v (continuing without audio)", err)
		} else {
			defer ambience.Stop()
			loop.OnFrame(func(s render.FrameStats) {
				ambience.SetIntensity(s.Activity(cols))
			})
			renderer.OnRespawn = func(int) {
				ambience.Drip()
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.Run(ctx)
}
