package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/docxlayout"
	"github.com/tsawler/docxlayout/reload"
	"github.com/tsawler/docxlayout/style"
)

// WatchCmd polls a document and lays it out again whenever it changes.
// Each published snapshot is summarised on one line.
type WatchCmd struct {
	FileArg
	LayoutFlags
	Interval time.Duration `default:"1s" help:"How often to check the file for changes"`
}

func (c *WatchCmd) Run(log *zap.Logger, out io.Writer) error {
	path, err := c.path()
	if err != nil {
		return err
	}
	loader, err := c.loader(path, log)
	if err != nil {
		return err
	}
	// Reloads of an unchanged styles part reuse resolved chains.
	loader = loader.StyleCache(style.NewCache())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watch(ctx, path, c.Interval, loader, log, out)
}

func watch(ctx context.Context, path string, interval time.Duration, loader *docxlayout.Loader, log *zap.Logger, out io.Writer) error {
	if interval <= 0 {
		interval = time.Second
	}
	var mu sync.Mutex // serialises writes to out
	w := reload.NewWorker[*docxlayout.Result](loader.Load,
		reload.WithLogger[*docxlayout.Result](log),
		reload.OnPublish(func(s *reload.Snapshot[*docxlayout.Result]) {
			mu.Lock()
			defer mu.Unlock()
			printSnapshot(out, s)
		}))

	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	var last time.Time
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		if fi, err := os.Stat(path); err != nil {
			log.Warn("stat failed", zap.String("path", path), zap.Error(err))
		} else if mod := fi.ModTime(); !mod.Equal(last) {
			last = mod
			w.Trigger()
		}

		select {
		case <-ctx.Done():
			err := <-errc
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case err := <-errc:
			return err
		case <-tick.C:
		}
	}
}

func printSnapshot(out io.Writer, s *reload.Snapshot[*docxlayout.Result]) {
	stamp := s.Completed.Format(time.TimeOnly)
	if !s.OK() {
		fmt.Fprintf(out, "%s #%d failed: %v\n", stamp, s.Seq, s.Failure)
		return
	}
	res := s.Result
	fmt.Fprintf(out, "%s #%d %s: %d pages, %d diagnostics, digest %s\n",
		stamp, s.Seq, s.ID, res.Tree.PageCount(), len(res.Diagnostics), res.DigestHex()[:16])
}
