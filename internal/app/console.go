package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/finverge-hq/gokuda/internal/config"
	"github.com/finverge-hq/gokuda/internal/logger"
	"github.com/finverge-hq/gokuda/pkg/endpoints"
	"github.com/finverge-hq/gokuda/pkg/kuda"
)

// ErrResult marks a run whose operation completed with an error result. The
// result has already been printed; callers map this to a non-zero exit.
var ErrResult = errors.New("operation returned an error result")

// Console wires configuration, the endpoint registry and the API client
// behind a terminal command: one operation per invocation, the normalized
// result printed as JSON on stdout.
type Console struct {
	cfg      *config.Config
	client   *kuda.Client
	registry *endpoints.Registry
	log      logger.Logger

	stdin  io.Reader
	stdout io.Writer
}

// NewConsole builds the console runtime from the loaded configuration.
func NewConsole(cfg *config.Config, log logger.Logger) (*Console, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	registry := endpoints.Defaults()
	if cfg.EndpointsFile != "" {
		if err := registry.Load(cfg.EndpointsFile); err != nil {
			return nil, fmt.Errorf("load endpoints registry: %w", err)
		}
	}
	log.InfoObj("endpoints registry ready", "endpoints_meta", map[string]any{
		"count": len(registry.All()),
		"file":  cfg.EndpointsFile,
	})

	client, err := kuda.New(cfg.Credentials(), kuda.Options{
		Timeout:   cfg.RequestTimeout,
		Endpoints: registry,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("build client: %w", err)
	}

	return &Console{
		cfg:      cfg,
		client:   client,
		registry: registry,
		log:      log,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
	}, nil
}

// Run executes one console invocation: `<operation> [json-data|-]`. The
// data argument becomes the operation's Data object; the request envelope
// (serviceType, requestRef) is generated. With no arguments it lists the
// registered operations.
func (c *Console) Run(ctx context.Context, args []string) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("console is not initialized")
	}

	if len(args) == 0 {
		return c.listOperations()
	}

	name := strings.TrimSpace(args[0])
	spec, ok := c.registry.ByName(name)
	if !ok {
		return fmt.Errorf("unknown operation %q (run without arguments to list operations)", name)
	}

	data, err := c.readPayload(args[1:])
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := c.client.Do(ctx, spec.ServiceType, kuda.Envelope(spec.ServiceType, data))
	if err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}

	c.log.InfoObj("operation finished", "operation_meta", map[string]any{
		"operation":  name,
		"status":     res.StatusCode,
		"is_error":   res.Error,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if err := c.printResult(res); err != nil {
		return err
	}
	if res.Error {
		return ErrResult
	}
	return nil
}

func (c *Console) listOperations() error {
	for _, s := range c.registry.All() {
		if _, err := fmt.Fprintf(c.stdout, "%s\t%s\n", s.Name, s.ServiceType); err != nil {
			return err
		}
	}
	return nil
}

// readPayload decodes the optional data argument; "-" reads it from stdin.
// A missing or blank argument sends an empty Data object.
func (c *Console) readPayload(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, nil
	}

	raw := args[0]
	if raw == "-" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return nil, fmt.Errorf("read payload from stdin: %w", err)
		}
		raw = string(data)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return payload, nil
}

func (c *Console) printResult(res kuda.Response) error {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(c.stdout, string(out))
	return err
}
