// Package printer submits rendered label images to CUPS. Discovery
// shells out to lpstat and submission to lp, the same path the macOS
// Dymo driver expects; both run through an injectable command runner
// so tests never spawn processes.
package printer

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Runner executes an external command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Client wraps the CUPS command line tools.
type Client struct {
	run Runner
	log logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithRunner replaces the command runner. Tests use this to capture
// the exact lp invocation without spawning processes.
func WithRunner(r Runner) Option {
	return func(c *Client) { c.run = r }
}

// WithLogger replaces the default logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client talking to the local CUPS spooler.
func New(opts ...Option) *Client {
	c := &Client{
		run: execRunner,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the available printer destinations, one per lpstat -e
// output line, in spooler order.
func (c *Client) List(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "lpstat", "-e")
	if err != nil {
		return nil, fmt.Errorf("printer: listing destinations: %w", err)
	}
	var printers []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			printers = append(printers, line)
		}
	}
	return printers, nil
}

// defaultKeywords match the label printer families this tool targets.
var defaultKeywords = []string{"dymo", "rx106", "comer"}

// PickDefault selects the first destination whose name contains a known
// label printer keyword, falling back to the first destination. The
// second return is false when the list is empty.
func PickDefault(printers []string) (string, bool) {
	if len(printers) == 0 {
		return "", false
	}
	for _, p := range printers {
		lower := strings.ToLower(p)
		for _, kw := range defaultKeywords {
			if strings.Contains(lower, kw) {
				return p, true
			}
		}
	}
	return printers[0], true
}

// Job describes one print submission.
type Job struct {
	// Printer is the CUPS destination name.
	Printer string
	// Media is the CUPS PageSize name of the loaded label stock.
	Media string
	// PPI tells the driver the pixel density of the file so it does
	// not re-interpolate the halftoned raster.
	PPI int
	// Options are extra raw -o options passed through to lp.
	Options []string
}

// Submit sends the file at path to the spooler. Scaling is pinned to
// 100 so the driver maps file pixels 1:1 onto head dots; any driver
// rescaling would destroy the halftone pattern.
func (c *Client) Submit(ctx context.Context, job Job, path string) error {
	if job.Printer == "" {
		return fmt.Errorf("printer: no destination selected")
	}
	args := []string{"-d", job.Printer}
	if job.Media != "" {
		args = append(args, "-o", "PageSize="+job.Media)
	}
	args = append(args, "-o", "scaling=100")
	if job.PPI > 0 {
		args = append(args, "-o", fmt.Sprintf("ppi=%d", job.PPI))
	}
	for _, opt := range job.Options {
		args = append(args, "-o", opt)
	}
	args = append(args, path)

	out, err := c.run(ctx, "lp", args...)
	if err != nil {
		return fmt.Errorf("printer: submitting to %s: %w: %s",
			job.Printer, err, strings.TrimSpace(string(out)))
	}
	c.log.WithFields(logrus.Fields{
		"printer": job.Printer,
		"media":   job.Media,
		"file":    path,
	}).Info("submitted print job")
	return nil
}
