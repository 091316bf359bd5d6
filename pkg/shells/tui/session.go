// Package tui is the terminal presentation shell: a prompt-driven session
// that reads form markup, runs the conversion pipeline, and prints the
// canonical JSON document.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/formjson/pkg/pipeline"
)

// Option customises the session configuration.
type Option func(*Session)

// WithDriver injects a custom prompt driver, mainly for tests.
func WithDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithConverter injects a preconfigured conversion pipeline.
func WithConverter(converter *pipeline.Converter) Option {
	return func(s *Session) {
		if converter != nil {
			s.converter = converter
		}
	}
}

// WithOutput redirects the rendered JSON away from stdout.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithLogger routes session diagnostics through the supplied logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session drives the prompt loop.
type Session struct {
	driver    PromptDriver
	converter *pipeline.Converter
	out       io.Writer
	logger    *zap.Logger
}

// New constructs a Session with defaults (survey driver, stdout output).
func New(options ...Option) *Session {
	s := &Session{
		driver:    newSurveyDriver(),
		converter: pipeline.New(),
		out:       os.Stdout,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run loops: prompt for markup, convert, print the canonical JSON, then
// offer another round. Conversion errors are reported inline and the loop
// continues; an interrupt ends the session cleanly.
func (s *Session) Run(ctx context.Context) error {
	for {
		input, err := s.driver.TextArea(ctx, TextAreaConfig{
			Message: "Paste form markup",
			Help:    "Raw or entity-escaped HTML; the first matching form is converted.",
		})
		if err != nil {
			return sessionErr(err)
		}

		selector, err := s.driver.Input(ctx, InputConfig{
			Message: "Form selector",
			Default: "form",
		})
		if err != nil {
			return sessionErr(err)
		}

		form, err := s.converter.Convert(ctx, pipeline.Request{Input: input, Selector: selector})
		if err != nil {
			s.logger.Warn("conversion failed", zap.Error(err))
			if infoErr := s.driver.Info(ctx, "conversion failed: "+err.Error()); infoErr != nil {
				return sessionErr(infoErr)
			}
		} else if _, err := fmt.Fprintln(s.out, form.JSON()); err != nil {
			return err
		}

		again, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: "Convert another form?",
			Default: true,
		})
		if err != nil {
			return sessionErr(err)
		}
		if !again {
			return nil
		}
	}
}

// sessionErr treats an interrupt as a clean exit.
func sessionErr(err error) error {
	if errors.Is(err, ErrInterrupted) {
		return nil
	}
	return err
}
