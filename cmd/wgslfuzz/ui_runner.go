package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"wgslfuzz/internal/batch"
	"wgslfuzz/internal/ui"
)

type batchOutcome struct {
	summary batch.Summary
	err     error
}

// runBatchWithUI drives batch.Run behind the progress model. Quitting the
// UI cancels the batch.
func runBatchWithUI(ctx context.Context, title string, opts batch.Options) (batch.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)
	opts.Sink = batch.ChannelSink{Ch: events}

	go func() {
		sum, err := batch.Run(ctx, opts)
		outcomeCh <- batchOutcome{summary: sum, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, opts.Count, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()

	// Модель могла выйти раньше: отменяем и дочитываем канал
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.summary, uiErr
	}
	return outcome.summary, outcome.err
}
