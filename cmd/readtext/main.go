// Command readtext downloads web pages, extracts their main text and saves
// it below an output directory that mirrors each page URL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrjoshuak/readtext"
	"github.com/mrjoshuak/readtext/config"
	"github.com/mrjoshuak/readtext/internal/fetch"
	"github.com/mrjoshuak/readtext/internal/render"
	"github.com/mrjoshuak/readtext/internal/saver"
)

const userAgent = "readtext/" + readtext.Version

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type job struct {
	ext      readtext.Extractor
	client   *fetch.Client
	renderer *render.Renderer
	saver    *saver.Saver
	format   render.Format
}

// run returns the process exit code: 0 on success, 1 when a page fails and 2
// on usage errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("readtext", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "Path to a YAML configuration file (default: built-in)")
		outDir     = fs.String("out", saver.DefaultRoot, "Directory results are written to")
		formatStr  = fs.String("format", string(render.Text), "Output format: text, html, markdown or json")
		timeout    = fs.Duration("timeout", 30*time.Second, "Timeout for each HTTP request")
		retries    = fs.Int("retries", 2, "Retries on transient HTTP failures")
		robots     = fs.Bool("robots", false, "Respect robots.txt")
		parallel   = fs.Int("parallel", 4, "Pages processed at the same time")
		verbose    = fs.Bool("v", false, "Verbose logging")
		version    = fs.Bool("version", false, "Show version information")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: readtext [options] url [url...]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  readtext http://lenta.ru/articles/2015/08/11/salarystop/\n")
		fmt.Fprintf(stderr, "  readtext -format markdown -out ./pages https://example.com/a https://example.com/b\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	if *version {
		fmt.Fprintf(stdout, "%s version %s\n", readtext.Name, readtext.Version)
		return 0
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	format, err := render.ParseFormat(*formatStr)
	if err != nil {
		log.Error().Err(err).Msg("invalid -format")
		return 2
	}
	if *parallel < 1 || *retries < 0 {
		log.Error().Int("parallel", *parallel).Int("retries", *retries).Msg("-parallel must be >= 1 and -retries >= 0")
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			log.Error().Err(err).Msg("load config")
			return 1
		}
	}

	j := &job{
		ext: readtext.New(readtext.WithConfig(cfg), readtext.WithLogger(log)),
		client: &fetch.Client{
			UserAgent:         userAgent,
			MaxAttempts:       *retries + 1,
			PerRequestTimeout: *timeout,
			MaxBodySize:       readtext.DefaultMaxBufferSize,
			RespectRobots:     *robots,
		},
		renderer: render.New(),
		saver:    &saver.Saver{Root: *outDir},
		format:   format,
	}

	urls := fs.Args()
	paths := make([]string, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*parallel)
	for i, u := range urls {
		g.Go(func() error {
			p, err := j.process(gctx, u)
			if err != nil {
				log.Error().Err(err).Str("url", u).Msg("run failed")
				return err
			}
			log.Debug().Str("url", u).Str("path", p).Msg("saved")
			paths[i] = p
			return nil
		})
	}
	err = g.Wait()

	for _, p := range paths {
		if p != "" {
			fmt.Fprintln(stdout, p)
		}
	}
	if err != nil {
		return 1
	}
	return 0
}

// process fetches, extracts, renders and saves one page.
func (j *job) process(ctx context.Context, url string) (string, error) {
	page, err := j.client.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	article, err := j.ext.ExtractFromHTML(page)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	out, err := j.renderer.Render(article, j.format, url)
	if err != nil {
		return "", err
	}
	return j.saver.Save(url, j.format.Ext(), out)
}
