// Package cli implements the interactive terminal chat.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"medchat/internal/responder"
	"medchat/internal/symptoms"
)

const helpText = `Describe your symptoms and press enter.

Commands:
  /help               show this help
  /keywords           list recognised keywords in match order
  /symptoms id,id     describe symptoms from the catalog
  /quit               leave the chat
`

// Prompter reads one line of input.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// NewLinerPrompter returns a Prompter with line editing and history.
func NewLinerPrompter() Prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return line
}

// Recorder receives one event per classified line.
type Recorder interface {
	RecordReply(trigger, outcome string)
}

// REPL is the interactive chat loop.
type REPL struct {
	responder *responder.Responder
	prompter  Prompter
	out       io.Writer
	recorder  Recorder
	logger    *zap.Logger
}

// NewREPL creates a REPL. recorder may be nil.
func NewREPL(r *responder.Responder, p Prompter, out io.Writer, recorder Recorder, logger *zap.Logger) *REPL {
	return &REPL{
		responder: r,
		prompter:  p,
		out:       out,
		recorder:  recorder,
		logger:    logger,
	}
}

// Run reads lines until /quit, EOF, ctrl-C or ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, promptStyle.Render("MedChat")+" - type /help for commands, /quit to leave.")

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := r.prompter.Prompt("you> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.prompter.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if !r.command(input) {
				return nil
			}
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return nil
		}

		r.reply(input)
	}
}

// command runs a slash command and reports whether the loop continues.
func (r *REPL) command(input string) bool {
	name, arg, _ := strings.Cut(input, " ")
	switch strings.ToLower(name) {
	case "/help":
		fmt.Fprint(r.out, helpText)
	case "/keywords":
		fmt.Fprintln(r.out, strings.Join(r.responder.Keywords(), ", "))
	case "/symptoms":
		ids := splitIDs(arg)
		if len(ids) == 0 {
			r.printSymptoms()
			return true
		}
		sentence, err := symptoms.Sentence(ids)
		if err != nil {
			fmt.Fprintf(r.out, "%s %v\n", errorStyle.Render("[Error]"), err)
			return true
		}
		fmt.Fprintln(r.out, sentence)
		r.reply(sentence)
	case "/quit", "/exit":
		return false
	default:
		fmt.Fprintf(r.out, "%s unknown command %s, try /help\n", errorStyle.Render("[Error]"), name)
	}
	return true
}

func (r *REPL) reply(input string) {
	resp := r.responder.Classify(input)
	if r.recorder != nil {
		r.recorder.RecordReply(resp.Trigger, string(resp.Outcome))
	}
	r.logger.Debug("classified",
		zap.String("outcome", string(resp.Outcome)),
		zap.String("trigger", resp.Trigger))
	fmt.Fprint(r.out, FormatReply(resp))
}

func (r *REPL) printSymptoms() {
	for _, c := range symptoms.Categories() {
		fmt.Fprintln(r.out, promptStyle.Render(c.Name))
		for _, s := range c.Symptoms {
			fmt.Fprintf(r.out, "  %-16s %s\n", s.ID, s.Name)
		}
	}
}

func splitIDs(arg string) []string {
	return strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || r == ' ' })
}
