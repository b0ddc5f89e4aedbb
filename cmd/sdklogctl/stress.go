package main

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/sdklog"
	"github.com/lixenwraith/sdklog/metrics"
	"github.com/spf13/cobra"
)

var stressLevels = []sdklog.Level{
	sdklog.LevelDebug,
	sdklog.LevelInfo,
	sdklog.LevelWarning,
	sdklog.LevelError,
}

// stressOptions controls the flood
type stressOptions struct {
	workers         int
	bursts          int
	recordsPerBurst int
	maxMessageSize  int
	pushgateway     string
}

func newStressCmd(opts *rootOptions) *cobra.Command {
	so := &stressOptions{}

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Flood the file ring from concurrent workers and report counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.openLogger(cmd, func(cfg *sdklog.Config) {
				cfg.ConsoleLevel = sdklog.LevelOff
				cfg.FileLevel = sdklog.LevelDebug
			})
			if err != nil {
				return err
			}
			defer logger.Shutdown(opts.timeout)

			start := time.Now()
			runStress(logger, so, func(completed int) {
				if completed%10 == 0 || completed == so.bursts {
					fmt.Fprintf(cmd.OutOrStdout(), "\rProgress: %d/%d bursts completed", completed, so.bursts)
				}
			})
			fmt.Fprintln(cmd.OutOrStdout())

			ctx, cancel := opts.context(cmd)
			defer cancel()
			if err := logger.Flush(ctx); err != nil {
				return err
			}

			stats := logger.Stats()
			fmt.Fprintf(cmd.OutOrStdout(),
				"elapsed=%s written=%d dropped=%d rotations=%d failed=%d active_bytes=%d\n",
				time.Since(start).Round(time.Millisecond), stats.Processed, stats.Dropped,
				stats.Rotations, stats.Failed, stats.ActiveBytes)

			if so.pushgateway != "" {
				pusher, err := metrics.NewPusher(logger, so.pushgateway, "sdklogctl_stress", opts.timeout)
				if err != nil {
					return err
				}
				return pusher.Push(ctx)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&so.workers, "workers", 50, "concurrent producers")
	cmd.Flags().IntVar(&so.bursts, "bursts", 100, "total bursts shared by the workers")
	cmd.Flags().IntVar(&so.recordsPerBurst, "records", 500, "records per burst")
	cmd.Flags().IntVar(&so.maxMessageSize, "max-size", 4000, "maximum message size in bytes")
	cmd.Flags().StringVar(&so.pushgateway, "pushgateway", "", "push final counters to this Pushgateway url")
	return cmd
}

// runStress distributes the bursts over the workers and blocks until all are logged
func runStress(logger *sdklog.Logger, so *stressOptions, progress func(completed int)) {
	burstChan := make(chan int, so.bursts)
	for i := 0; i < so.bursts; i++ {
		burstChan <- i
	}
	close(burstChan)

	var wg sync.WaitGroup
	var completed atomic.Int64
	var progressMu sync.Mutex

	for w := 0; w < so.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))
			for burstID := range burstChan {
				logBurst(logger, rng, so, workerID, burstID)
				n := int(completed.Add(1))
				if progress != nil {
					progressMu.Lock()
					progress(n)
					progressMu.Unlock()
				}
			}
		}(w)
	}
	wg.Wait()
}

// logBurst simulates a burst of logging activity
func logBurst(logger *sdklog.Logger, rng *rand.Rand, so *stressOptions, workerID, burstID int) {
	source := fmt.Sprintf("worker-%d", workerID)
	for i := 0; i < so.recordsPerBurst; i++ {
		level := stressLevels[rng.Intn(len(stressLevels))]
		size := 10
		if so.maxMessageSize > 10 {
			size += rng.Intn(so.maxMessageSize - 10)
		}
		msg := fmt.Sprintf("bst=%d seq=%d %s", burstID, i, randomMessage(rng, size))
		logger.Log(source, level, msg, nil)
	}
}

func randomMessage(rng *rand.Rand, size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rng.Intn(len(chars))])
	}
	return sb.String()
}
