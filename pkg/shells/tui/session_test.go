package tui_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/formjson/pkg/shells/tui"
)

// scriptDriver replays canned answers and records every Info message.
type scriptDriver struct {
	textAreas []string
	inputs    []string
	confirms  []bool

	textAreaErr error

	infos []string
}

func (d *scriptDriver) next(answers *[]string) string {
	if len(*answers) == 0 {
		return ""
	}
	answer := (*answers)[0]
	*answers = (*answers)[1:]
	return answer
}

func (d *scriptDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	answer := d.next(&d.inputs)
	if answer == "" {
		answer = cfg.Default
	}
	return answer, nil
}

func (d *scriptDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	if d.textAreaErr != nil {
		return "", d.textAreaErr
	}
	return d.next(&d.textAreas), nil
}

func (d *scriptDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, nil
	}
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestSessionConvertsAndPrints(t *testing.T) {
	driver := &scriptDriver{
		textAreas: []string{`<form action="/api/x" method="post"><input name="age" value="30"></form>`},
		confirms:  []bool{false},
	}
	var out strings.Builder

	session := tui.New(tui.WithDriver(driver), tui.WithOutput(&out))
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := `{
  "age": 30,
  "__form__action": "/api/x",
  "__form__method": "POST"
}
`
	if out.String() != want {
		t.Fatalf("printed document mismatch:\nwant: %q\ngot:  %q", want, out.String())
	}
	if len(driver.infos) != 0 {
		t.Fatalf("unexpected info messages: %v", driver.infos)
	}
}

func TestSessionReportsConversionErrorAndContinues(t *testing.T) {
	driver := &scriptDriver{
		textAreas: []string{
			"<div>not a form</div>",
			`<form><input name="ok" value="1"></form>`,
		},
		confirms: []bool{true, false},
	}
	var out strings.Builder

	session := tui.New(tui.WithDriver(driver), tui.WithOutput(&out))
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(driver.infos) != 1 {
		t.Fatalf("want one failure notice, got %v", driver.infos)
	}
	if !strings.HasPrefix(driver.infos[0], "conversion failed: ") {
		t.Fatalf("failure notice format: %q", driver.infos[0])
	}
	if !strings.Contains(out.String(), `"ok": 1`) {
		t.Fatalf("second round did not print its document:\n%s", out.String())
	}
}

func TestSessionUsesSelectorAnswer(t *testing.T) {
	driver := &scriptDriver{
		textAreas: []string{
			`<form id="a"><input name="from" value="a"></form>` +
				`<form id="b"><input name="from" value="b"></form>`,
		},
		inputs:   []string{"#b"},
		confirms: []bool{false},
	}
	var out strings.Builder

	session := tui.New(tui.WithDriver(driver), tui.WithOutput(&out))
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `"from": "b"`) {
		t.Fatalf("selector answer ignored:\n%s", out.String())
	}
}

func TestSessionInterruptExitsCleanly(t *testing.T) {
	driver := &scriptDriver{textAreaErr: tui.ErrInterrupted}

	session := tui.New(tui.WithDriver(driver), tui.WithOutput(&strings.Builder{}))
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("interrupt should exit cleanly, got %v", err)
	}
}
