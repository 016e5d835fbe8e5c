package model_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-workerform/pkg/model"
	"github.com/goliatone/go-workerform/pkg/testsupport"
)

func TestDefaultModelGolden(t *testing.T) {
	got := model.Default()

	goldenPath := filepath.Join("testdata", "worker_form.golden.json")
	testsupport.WriteGolden(t, goldenPath, got)
	want := testsupport.MustLoadFormModel(t, goldenPath)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form model mismatch (-want +got):\n%s", diff)
	}
}
