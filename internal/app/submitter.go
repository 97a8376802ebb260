package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/intakehq/intake-submitter/internal/config"
	"github.com/intakehq/intake-submitter/internal/domain"
	"github.com/intakehq/intake-submitter/internal/logger"
	"github.com/intakehq/intake-submitter/internal/storage"
	"github.com/intakehq/intake-submitter/pkg/httpclient"
	"github.com/intakehq/intake-submitter/pkg/sinks"
	"github.com/intakehq/intake-submitter/pkg/targets"
)

// Submitter performs the two-step intake handshake against one target: fetch
// a bearer token, send the authenticated submission, then fan the receipt
// out to the configured sinks.
type Submitter struct {
	cfg        *config.Config
	target     targets.Target
	client     *httpclient.Client
	fanout     *sinks.Fanout
	store      storage.Store
	log        logger.Logger
	submission domain.Submission
	out        io.Writer
}

// NewSubmitter builds a submitter runtime from config files.
func NewSubmitter(ctx context.Context, cfg *config.Config, log logger.Logger) (*Submitter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	targetReg, err := targets.LoadRegistry(cfg.TargetsFile)
	if err != nil {
		return nil, fmt.Errorf("load targets registry: %w", err)
	}
	target, ok := targetReg.ByID(cfg.TargetID)
	if !ok {
		return nil, fmt.Errorf("target %q not found in %s", cfg.TargetID, cfg.TargetsFile)
	}
	log.InfoObj("target selected", "target_meta", map[string]any{
		"id":       target.ID,
		"base_url": target.BaseURL,
	})

	sinkList, err := buildSinks(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}
	fanout := sinks.NewFanout(sinkList)
	log.InfoObj("sinks ready", "sinks_meta", map[string]any{
		"count": fanout.Size(),
	})

	storeOpts := storage.Options{
		TokenTTL:        cfg.TokenTTL,
		CleanupInterval: cfg.StorageCleanup,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	client := httpclient.New(target.BaseURL, httpclient.WithTimeout(requestTimeout(cfg, target)))
	for name, value := range target.Headers {
		client.SetHeader(name, value)
	}

	return &Submitter{
		cfg:    cfg,
		target: target,
		client: client,
		fanout: fanout,
		store:  store,
		log:    log,
		submission: domain.Submission{
			Name:  cfg.SubmitName,
			Email: cfg.SubmitEmail,
			URL:   cfg.SubmitURL,
		},
		out: os.Stdout,
	}, nil
}

// requestTimeout resolves the effective request timeout: the target's
// timeout_seconds applies unless request_timeout_seconds was configured,
// which then overrides every target.
func requestTimeout(cfg *config.Config, target targets.Target) time.Duration {
	if cfg.RequestTimeout > 0 {
		return cfg.RequestTimeout
	}
	return time.Duration(target.TimeoutSeconds) * time.Second
}

// buildSinks assembles the receipt sinks; with no sinks file configured the
// receipt only goes to the log.
func buildSinks(ctx context.Context, cfg *config.Config, log logger.Logger) ([]sinks.Sink, error) {
	if strings.TrimSpace(cfg.SinksFile) == "" {
		return []sinks.Sink{sinks.NewLogSink("console", log)}, nil
	}

	sinkReg, err := sinks.LoadRegistry(cfg.SinksFile)
	if err != nil {
		return nil, err
	}
	enabled := sinkReg.Enabled()
	if len(enabled) == 0 {
		return []sinks.Sink{sinks.NewLogSink("console", log)}, nil
	}
	return sinks.BuildAll(ctx, sinks.DefaultRegistry(), enabled, log)
}

// Run executes one submission: token, authorization header, POST, receipt.
func (s *Submitter) Run(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("submitter is not initialized")
	}
	defer s.closeResources()

	token, err := s.token(ctx)
	if err != nil {
		return fmt.Errorf("obtain token for %q: %w", s.target.ID, err)
	}
	s.client.SetHeader("Authorization", "Bearer "+token)

	res, err := s.client.Post(ctx, s.target.SubmitEndpoint, s.submission.Payload(), true)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			s.log.ErrorObj("submission rejected", "submit_error", map[string]any{
				"target_id": s.target.ID,
				"status":    httpErr.StatusCode,
				"body":      summarizeBody(httpErr.Body),
			})
		}
		return fmt.Errorf("submit to %q: %w", s.target.ID, err)
	}

	s.log.InfoObj("submission accepted", "submit_result", map[string]any{
		"target_id": s.target.ID,
		"status":    res.StatusCode,
	})
	fmt.Fprintln(s.out, strings.TrimSpace(string(res.Raw)))

	evt := sinks.NewEvent(s.target.ID, s.submission, res.StatusCode, res.JSON)
	if delivered, err := s.fanout.Deliver(ctx, evt); err != nil {
		s.log.WarnObj("receipt delivery incomplete", "sink_errors", map[string]any{
			"delivered": delivered,
			"error":     err.Error(),
		})
	}
	return nil
}

// token returns a cached token when one is still fresh, otherwise performs
// the token handshake and caches the result.
func (s *Submitter) token(ctx context.Context) (string, error) {
	if tok, ok, err := s.store.Token(s.target.ID); err != nil {
		s.log.WarnObj("token cache read failed", "error", err)
	} else if ok {
		s.log.DebugObj("using cached token", "target_id", s.target.ID)
		return tok, nil
	}

	res, err := s.client.Send(ctx, s.target.TokenMethod, s.target.TokenEndpoint, nil, true)
	if err != nil {
		return "", err
	}

	obj, ok := res.JSON.(map[string]any)
	if !ok {
		return "", fmt.Errorf("token response is not a JSON object")
	}
	tok, ok := obj[s.target.TokenField].(string)
	if !ok || strings.TrimSpace(tok) == "" {
		return "", fmt.Errorf("token response missing %q field", s.target.TokenField)
	}

	if err := s.store.SaveToken(s.target.ID, tok); err != nil {
		s.log.WarnObj("token cache write failed", "error", err)
	}
	return tok, nil
}

// closeResources safely closes the storage backend and the sinks, logging
// any errors encountered.
func (s *Submitter) closeResources() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.ErrorObj("storage close failed", "error", err)
		}
	}
	if err := s.fanout.Close(); err != nil {
		s.log.ErrorObj("sink close failed", "error", err)
	}
}
