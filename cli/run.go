package cli

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/cxrvus/antbyte"
	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/world"
)

func newRunCommand() *cobra.Command {
	var (
		debug   bool
		format  string
		step    bool
		loop    bool
		instant bool
		ticks   uint32
		gifPath string
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "run <file.ant>",
		Short: "compile and run a world to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args[0], runOpts{
				debug: debug, format: DumpFormat(format), step: step, loop: loop,
				instant: instant, ticks: ticks, gifPath: gifPath, quiet: quiet,
			})
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "print each bound behavior's peripheral wiring and truth table instead of running")
	cmd.Flags().StringVar(&format, "format", string(DumpText), "debug dump format: text|yaml|cbor")
	cmd.Flags().BoolVar(&step, "step", false, "stepped mode: block on stdin between ticks")
	cmd.Flags().BoolVar(&loop, "loop", false, "restart when the population dies out or the tick cap is hit")
	cmd.Flags().BoolVar(&instant, "instant", false, "no frame pacing sleep")
	cmd.Flags().Uint32Var(&ticks, "ticks", 0, "override the world's configured tick cap")
	cmd.Flags().StringVar(&gifPath, "gif", "", "render up to 256 frames to this GIF path instead of running interactively")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress per-frame ANSI rendering")

	return cmd
}

type runOpts struct {
	debug   bool
	format  DumpFormat
	step    bool
	loop    bool
	instant bool
	ticks   uint32
	gifPath string
	quiet   bool
}

func runRun(path string, opts runOpts) (err error) {
	props, err := antbyte.Build(path)
	if err != nil {
		return err
	}

	if opts.debug {
		return Dump(os.Stdout, props, opts.format)
	}

	if opts.loop {
		props.Config.Looping = true
	}
	if opts.ticks != 0 {
		props.Config.Ticks = &opts.ticks
	}

	// A cache-invariant violation inside world.State is a programming bug
	// "impossible by construction" (spec.md §7) — this recover is the exit
	// code 4 safety net for that case, not an expected code path.
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.WorldOccupancy, fmt.Sprintf("internal invariant violation: %v", r))
		}
	}()

	if opts.gifPath != "" {
		return runGIF(props, opts.gifPath)
	}

	for {
		s := world.NewState(props)
		if err := runInteractive(s, opts, nil); err != nil {
			return err
		}
		if !props.Config.Looping {
			return nil
		}
	}
}

func runGIF(props *world.Properties, path string) error {
	s := world.NewState(props)

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.CliIO, "could not create GIF output '"+path+"'", err)
	}
	defer f.Close()

	glog.V(1).Infof("cli: rendering GIF to %s", path)
	return ExportGIF(f, s)
}

// runInteractive drives s to completion, rendering every tick unless
// opts.quiet. stop, if non-nil, is polled between ticks so a caller (watch's
// recompile loop) can abandon a run early without killing the process.
func runInteractive(s *world.State, opts runOpts, stop <-chan struct{}) error {
	reader := bufio.NewReader(os.Stdin)

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		if !opts.quiet {
			ClearScreen()
			fmt.Printf("tick %d\n", s.TickCount)
			fmt.Print(RenderANSI(s))
		}

		if opts.step {
			_, _ = reader.ReadString('\n')
		} else if !opts.instant {
			if fps := s.Props.Config.FPS; fps != nil && *fps > 0 {
				time.Sleep(time.Second / time.Duration(*fps))
			}
		}

		more, err := s.Tick()
		if err != nil {
			return err
		}
		if !more {
			if !opts.quiet {
				ClearScreen()
				fmt.Printf("tick %d (final)\n", s.TickCount)
				fmt.Print(RenderANSI(s))
			}
			return nil
		}
	}
}
