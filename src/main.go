package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"elevsim/src/config"
	"elevsim/src/elev"
	"elevsim/src/executor"
	"elevsim/src/generator"
	"elevsim/src/logsink"
	"elevsim/src/types"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML or TOML settings file")
	envPath := flag.String("env", ".env", "Path to a dotenv file with ELEVSIM_* overrides")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the random request generator")
	var calls []string
	flag.Func("call", "Request queued before start, as floor:direction:destination (repeatable)", func(v string) error {
		calls = append(calls, v)
		return nil
	})
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err == nil {
		cfg, err = config.ApplyEnv(cfg, *envPath)
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logOut, closeLog, err := logsink.InitLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	sink, err := logsink.New(cfg.Logging, logOut)
	if err != nil {
		slog.Error("Failed to create log sink", "error", err)
		os.Exit(1)
	}

	scheduler, err := executor.New(cfg, sink, generator.New(cfg.Building.Floors, *seed))
	if err != nil {
		slog.Error("Failed to create scheduler", "error", err)
		os.Exit(1)
	}

	for _, call := range calls {
		floor, dir, dest, err := parseCall(call)
		if err != nil {
			slog.Error("Bad -call", "value", call, "error", err)
			os.Exit(1)
		}
		if _, err := scheduler.ProcessManualRequest(floor, dir, dest); err != nil {
			slog.Error("Initial request failed", "value", call, "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Elevator car simulator for a building with %d floors and %d cars\n",
		cfg.Building.Floors, cfg.Building.Elevators)
	fmt.Println("Press ESC to stop, p to pause random requests, 0-9 to call a car.")

	keysDone := listenKeys(ctx, stop, scheduler, cfg.Building.Floors)
	scheduler.Run(ctx)

	// Wait for the key reader so the terminal leaves raw mode before exit.
	stop()
	<-keysDone

	printSummary(os.Stdout, scheduler.Stats(), scheduler.Snapshot())
}

// listenKeys reads the keyboard in the background. The returned channel is
// closed once the reader has stopped and released the terminal.
func listenKeys(ctx context.Context, stop context.CancelFunc, scheduler *executor.Scheduler, floors int) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		keys, err := keyboard.GetKeys(10)
		if err != nil {
			slog.Warn("Keyboard unavailable, stop with a signal", "error", err)
			return
		}
		defer keyboard.Close()
		handleKeys(ctx, stop, scheduler, floors, keys)
	}()
	return done
}

// handleKeys acts on key presses until ESC, Ctrl-C or ctx ends.
func handleKeys(ctx context.Context, stop context.CancelFunc, scheduler *executor.Scheduler, floors int, keys <-chan keyboard.KeyEvent) {
	randomEnabled := true
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-keys:
			if !ok {
				return
			}
			if event.Err != nil {
				slog.Error("Keyboard error", "error", event.Err)
				continue
			}
			switch {
			case event.Key == keyboard.KeyEsc || event.Key == keyboard.KeyCtrlC:
				fmt.Println("Stopping simulation...")
				stop()
				return
			case event.Rune == 'p' || event.Rune == 'P':
				randomEnabled = !randomEnabled
				if err := scheduler.SetRandomRequests(ctx, randomEnabled); err != nil {
					slog.Warn("Could not toggle random requests", "error", err)
				}
			case event.Rune >= '0' && event.Rune <= '9':
				floor := int(event.Rune - '0')
				dir := types.MD_Up
				if floor >= floors {
					dir = types.MD_Down
				}
				if _, err := scheduler.Submit(ctx, types.NewRequest(floor, dir)); err != nil {
					slog.Warn("Manual request failed", "floor", floor, "error", err)
				}
			}
		}
	}
}

// parseCall reads "floor:direction:destination", e.g. "2:up:7".
func parseCall(v string) (int, types.MotorDirection, int, error) {
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return 0, types.MD_Idle, 0, fmt.Errorf("want floor:direction:destination, got %q", v)
	}
	floor, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, types.MD_Idle, 0, err
	}
	dir, err := types.ParseDirection(parts[1])
	if err != nil {
		return 0, types.MD_Idle, 0, err
	}
	dest, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, types.MD_Idle, 0, err
	}
	return floor, dir, dest, nil
}

// printSummary writes the run totals and where every car ended up.
func printSummary(w io.Writer, stats executor.Stats, cars []elev.ElevState) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Simulation stopped after %d ticks: %d requests handled, %d stops served, %d failed iterations\n",
		stats.Ticks, stats.Requests, stats.StopsServed, stats.Failures)
	for i := range cars {
		p.Fprintln(w, cars[i].FormatStatus())
	}
}
