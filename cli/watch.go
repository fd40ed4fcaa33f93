package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/cxrvus/antbyte"
	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/world"
)

func newWatchCommand() *cobra.Command {
	var (
		step    bool
		instant bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "watch <file.ant>",
		Short: "recompile and restart whenever the source file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], runOpts{step: step, instant: instant, quiet: quiet})
		},
	}

	cmd.Flags().BoolVar(&step, "step", false, "stepped mode: block on stdin between ticks")
	cmd.Flags().BoolVar(&instant, "instant", false, "no frame pacing sleep")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress per-frame ANSI rendering")

	return cmd
}

// runWatch launches the world in its own goroutine and restarts it whenever
// path changes on disk. Grounded on original_source/src/cli/watch.rs: an
// fsnotify watcher feeds a pending-change flag that a 100ms poll loop
// debounces with a 200ms settle window before tearing down the running
// goroutine (via its stop channel) and spawning a fresh one.
func runWatch(path string, opts runOpts) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.CliIO, "could not start file watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return errors.Wrap(errors.CliIO, "could not watch '"+path+"'", err)
	}
	fmt.Fprintf(os.Stderr, "watching file: %s\n", path)

	stop := launchWatched(path, opts)

	pendingChange := false
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				close(stop)
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pendingChange = true
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				close(stop)
				return nil
			}
			glog.Warningf("watch: %v", watchErr)
		case <-time.After(100 * time.Millisecond):
			if pendingChange {
				pendingChange = false
				time.Sleep(200 * time.Millisecond)
				close(stop)
				stop = launchWatched(path, opts)
			}
		}
	}
}

// launchWatched starts one background run of path and returns the channel
// that cancels it.
func launchWatched(path string, opts runOpts) chan struct{} {
	stop := make(chan struct{})
	go func() {
		props, err := antbyte.Build(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, formatError(err))
			return
		}

		for {
			select {
			case <-stop:
				return
			default:
			}

			s := world.NewState(props)
			if err := runInteractive(s, opts, stop); err != nil {
				fmt.Fprintln(os.Stderr, formatError(err))
				return
			}
			if !props.Config.Looping {
				return
			}
		}
	}()
	return stop
}
