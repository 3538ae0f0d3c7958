package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"measurement-generator/client"
	"measurement-generator/internal/config"
)

func runWrite(e env, args []string) error {
	var (
		configPath string
		serverURL  string
		database   string
		gzip       bool
		timeout    time.Duration
		batchSize  int
		logLevel   string
	)

	fs := newFlagSet("write", e)
	fs.StringVar(&configPath, "config", "", "config file (default: "+config.DefaultFileName+" if present)")
	fs.StringVar(&serverURL, "url", "", "server base url, e.g. http://localhost:8086")
	fs.StringVar(&database, "db", "", "database to write into")
	fs.BoolVar(&gzip, "gzip", false, "gzip request bodies")
	fs.DurationVar(&timeout, "timeout", 0, "request timeout (default from config, 10s)")
	fs.IntVar(&batchSize, "batch", 5000, "lines per request")
	fs.StringVar(&logLevel, "log-level", "info", "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := (&commonFlags{logLevel: logLevel}).logger(e)
	if err != nil {
		return err
	}

	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return err
	}

	if serverURL != "" {
		cfg.Write.URL = serverURL
	}

	if database != "" {
		cfg.Write.Database = database
	}

	if fs.Changed("gzip") {
		cfg.Write.Gzip = gzip
	}

	if timeout > 0 {
		cfg.Write.Timeout = timeout
	}

	if diags := config.ValidateWrite(cfg); diags.HasErrors() {
		return fmt.Errorf("invalid configuration: %w", diags.Error())
	}

	if batchSize <= 0 {
		return errors.New("--batch must be positive")
	}

	c, err := client.New(cfg.Write.URL, cfg.Write.Database,
		client.WithGzip(cfg.Write.Gzip),
		client.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	w := &batchWriter{client: c, size: batchSize, timeout: cfg.Write.Timeout}

	for _, name := range inputs {
		if err := w.feed(ctx, e, name); err != nil {
			return err
		}
	}

	if err := w.flush(ctx); err != nil {
		return err
	}

	logger.Info().Int("lines", w.total).Str("url", c.WriteURL()).Msg("write complete")

	return nil
}

// batchWriter groups input lines into requests of at most size lines.
type batchWriter struct {
	client  *client.Client
	size    int
	timeout time.Duration
	pending []string
	total   int
}

func (w *batchWriter) feed(ctx context.Context, e env, name string) error {
	var r io.Reader = e.stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()

		r = f
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), 4<<20)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		w.pending = append(w.pending, line)
		if len(w.pending) >= w.size {
			if err := w.flush(ctx); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	return nil
}

func (w *batchWriter) flush(ctx context.Context) error {
	if len(w.pending) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.client.WriteLines(ctx, w.pending...); err != nil {
		return err
	}

	w.total += len(w.pending)
	w.pending = w.pending[:0]

	return nil
}
