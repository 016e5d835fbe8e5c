package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-workerform/pkg/controller"
	"github.com/goliatone/go-workerform/pkg/service"
	"github.com/goliatone/go-workerform/pkg/testsupport"
)

func TestLogLoaderWithController(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	loader := service.NewLogLoader(zap.New(core).Sugar())
	save, err := service.NewFileSaveService(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("new save service: %v", err)
	}

	c := controller.New(save, service.NewWriterDialogs(nil), loader)
	record := testsupport.LauraZitelli()
	c.GenerateForm(&record)

	if err := c.Submit(testsupport.Context()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if diff := cmp.Diff([]bool{true, false}, loader.Transitions()); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
	if loader.Loading() {
		t.Fatalf("expected loader to be cleared")
	}
	if logs.FilterMessage("saving worker...").Len() != 1 {
		t.Fatalf("expected one saving log entry")
	}
}

func TestWriterDialogs(t *testing.T) {
	var buf bytes.Buffer
	dialogs := service.NewWriterDialogs(&buf)

	if err := dialogs.Notify(context.Background(), "Worker saved"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if buf.String() != "Worker saved\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := dialogs.Notify(ctx, "late"); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}
