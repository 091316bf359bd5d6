package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/formjson/pkg/highlight"
	"github.com/goliatone/formjson/pkg/pipeline"
	"github.com/goliatone/formjson/pkg/shells/tui"
)

func main() {
	selector := flag.String("selector", "form", "CSS selector for the form to convert")
	input := flag.String("input", "", "markup file (stdin if empty)")
	output := flag.String("output", "", "output file (stdout if empty)")
	classes := flag.String("classes", "", "YAML file with highlight class overrides")
	highlighted := flag.Bool("highlight", false, "emit a highlighted markup fragment instead of plain JSON")
	interactive := flag.Bool("interactive", false, "run the interactive prompt session")
	flag.Parse()

	ctx := context.Background()

	if *interactive {
		session := tui.New(tui.WithConverter(pipeline.New(pipeline.WithSelector(*selector))))
		if err := session.Run(ctx); err != nil {
			log.Fatalf("Session failed: %v", err)
		}
		return
	}

	markup, err := readInput(*input)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	options := []pipeline.Option{pipeline.WithSelector(*selector)}
	if *classes != "" {
		raw, err := os.ReadFile(*classes)
		if err != nil {
			log.Fatalf("Failed to read classes file: %v", err)
		}
		parsed, err := highlight.ClassesFromYAML(raw)
		if err != nil {
			log.Fatalf("Invalid classes file: %v", err)
		}
		options = append(options, pipeline.WithHighlightClasses(parsed))
	}

	converter := pipeline.New(options...)
	form, err := converter.Convert(ctx, pipeline.Request{Input: markup})
	if err != nil {
		log.Fatalf("Failed to convert form: %v", err)
	}

	text := form.JSON()
	if *highlighted {
		text = converter.Highlight(form)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(text+"\n"), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Document written to %s\n", *output)
	} else {
		fmt.Println(text)
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		raw, err := io.ReadAll(os.Stdin)
		return string(raw), err
	}
	raw, err := os.ReadFile(path)
	return string(raw), err
}
