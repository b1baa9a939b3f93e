package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/toastkit/pkg/animation"
	terrors "github.com/go-drift/toastkit/pkg/errors"
	"github.com/go-drift/toastkit/pkg/toast"
)

const (
	// simFrame is the simulated frame interval.
	simFrame = 16 * time.Millisecond
	// settlePoll is how often a real-time run checks whether it is done.
	settlePoll = 50 * time.Millisecond
)

type simulateOptions struct {
	maxVisible    int
	mode          string
	count         int
	interval      time.Duration
	timeout       time.Duration
	infiniteEvery int
	closeAfter    time.Duration
	realtime      bool
}

func simulateCmd() *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted burst of toasts on a simulated clock",
		Long: `Show --count toasts, one every --interval, on a simulated clock and
print every scheduler event. Nothing is drawn; the run finishes as soon
as every toast is gone.

With --infinite-every n, toasts 1, n+1, 2n+1 and so on have no timeout
and are closed by the simulated user --close-after after they open.

With --realtime the driver runs on its own goroutine against the wall
clock, the way an application would drive it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.maxVisible, "max", 1, "maximum number of visible toasts")
	f.StringVar(&opts.mode, "mode", toast.CancelTimeout.String(), "queue mode: cancel-timeout or wait")
	f.IntVar(&opts.count, "count", 5, "number of toasts to show")
	f.DurationVar(&opts.interval, "interval", 500*time.Millisecond, "delay between show requests")
	f.DurationVar(&opts.timeout, "timeout", toast.DefaultTimeout, "timeout of finite toasts")
	f.IntVar(&opts.infiniteEvery, "infinite-every", 0, "make toasts 1, n+1, 2n+1, ... infinite (0 = never)")
	f.DurationVar(&opts.closeAfter, "close-after", 3*time.Second, "when infinite toasts are closed by hand")
	f.BoolVar(&opts.realtime, "realtime", false, "run on the wall clock instead of a simulated one")

	return cmd
}

func runSimulation(ctx context.Context, w io.Writer, opts simulateOptions) error {
	mode, err := toast.ParseQueueMode(opts.mode)
	if err != nil {
		return err
	}
	if opts.count < 0 {
		return fmt.Errorf("negative --count %d", opts.count)
	}

	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	var clock animation.Clock = animation.ClockFunc(func() time.Time { return now })
	if opts.realtime {
		clock = animation.SystemClock{}
		start = time.Now()
	}
	driver := animation.NewFrameDriver(clock)

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}).Level(zerolog.DebugLevel).Hook(zerolog.HookFunc(func(e *zerolog.Event, _ zerolog.Level, _ string) {
		e.Str("at", driver.Now().Sub(start).Round(time.Millisecond).String())
	}))
	prev := terrors.SetHandler(terrors.NewLogHandler(log, false))
	defer terrors.SetHandler(prev)

	reg := prometheus.NewRegistry()
	sched := toast.NewScheduler(driver,
		toast.WithQueueMode(mode),
		toast.WithLogger(log),
		toast.WithMetrics(toast.NewMetrics(reg, "toastkit")),
	)
	if err := sched.SetMaxVisibleToasts(opts.maxVisible); err != nil {
		return err
	}

	for i := range opts.count {
		n := i + 1
		driver.AfterFunc(time.Duration(i)*opts.interval, func() {
			timeout := opts.timeout
			infinite := opts.infiniteEvery > 0 && (n-1)%opts.infiniteEvery == 0
			if infinite {
				timeout = toast.Infinite
			}
			t := sched.NewToast()
			t.SetMessage(fmt.Sprintf("toast %d", n))
			t.OnOpen(func() {
				log.Info().Uint64("toast_id", t.ID()).Str("text", t.Message()).Msg("opened")
				if infinite {
					driver.AfterFunc(opts.closeAfter, func() { t.Close(true) })
				}
			})
			t.OnClose(func(any) {
				log.Info().Uint64("toast_id", t.ID()).Str("text", t.Message()).Msg("closed")
			})
			log.Info().Uint64("toast_id", t.ID()).Str("text", t.Message()).Msg("show requested")
			sched.ShowToast(t, timeout)
		})
	}

	limit := time.Duration(opts.count)*(opts.interval+opts.timeout+opts.closeAfter) + time.Second
	if opts.realtime {
		if err := runRealtime(ctx, driver, sched, limit, log); err != nil {
			return err
		}
		return writeSummary(w, reg)
	}

	driver.Step()
	for !settled(driver, sched) {
		if now.Sub(start) > limit {
			sched.Close()
			driver.Step()
			log.Warn().Msg("simulation stopped at time limit")
			break
		}
		now = now.Add(simFrame)
		driver.Step()
	}

	return writeSummary(w, reg)
}

func settled(driver *animation.FrameDriver, sched *toast.Scheduler) bool {
	return !driver.HasPendingWork() && len(sched.ActiveToasts()) == 0 && len(sched.QueuedToasts()) == 0
}

// runRealtime steps driver on its own goroutine until the scheduler has
// settled or limit has passed. The scheduler is only touched through Call.
func runRealtime(ctx context.Context, driver *animation.FrameDriver, sched *toast.Scheduler, limit time.Duration, log zerolog.Logger) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = driver.Run(runCtx, simFrame)
	}()

	deadline := time.NewTimer(limit)
	defer deadline.Stop()
	poll := time.NewTicker(settlePoll)
	defer poll.Stop()

	var err error
loop:
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		case <-deadline.C:
			err = driver.Call(runCtx, func() {
				sched.Close()
				log.Warn().Msg("simulation stopped at time limit")
			})
			break loop
		case <-poll.C:
			var done bool
			if err = driver.Call(runCtx, func() { done = settled(driver, sched) }); err != nil || done {
				break loop
			}
		}
	}

	cancel()
	<-stopped
	return err
}

func writeSummary(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	var parts []string
	for _, mf := range families {
		name := strings.TrimPrefix(mf.GetName(), "toastkit_")
		if !strings.HasSuffix(name, "_total") {
			continue
		}
		for _, m := range mf.GetMetric() {
			parts = append(parts, fmt.Sprintf("%s=%g", strings.TrimSuffix(name, "_total"), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(parts)
	_, err = fmt.Fprintf(w, "summary: %s\n", strings.Join(parts, " "))
	return err
}
