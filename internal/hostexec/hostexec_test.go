package hostexec

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"nemo/util/shell"
)

// recordingShell captures every invocation and fails the one whose step
// arguments contain failOn.
type recordingShell struct {
	invocations []shell.Options
	failOn      string
	diagnostics string
}

func (this *recordingShell) CommandExists(string) bool { return true }

func (this *recordingShell) ExecCommand(_ context.Context, opts ...shell.Option) ([]byte, []byte, error) {
	o := shell.NewOptions(opts...)

	this.invocations = append(this.invocations, o)

	if this.failOn != "" && strings.Contains(strings.Join(o.Args, " "), this.failOn) {
		return nil, []byte(this.diagnostics), fmt.Errorf("exit status 1")
	}

	return nil, nil, nil
}

func TestPrepareSequence(t *testing.T) {
	recorder := new(recordingShell)
	shell.DefaultShell = recorder

	err := Prepare(context.Background(), "/exp/demo", "demo.env", "Wed, 02 Oct 2024 13:45:00 +0000")
	if err != nil {
		t.Logf("unexpected error %v", err)
		t.FailNow()
	}

	expected := [][]string{
		{"host/control", "prestart", "/exp/demo", "demo.env", "Wed, 02 Oct 2024 13:45:00 +0000"},
		{"host/bridge", "start"},
		{"sysctl", "kernel.sched_rt_runtime_us=-1"},
		{"host/control", "start", "/exp/demo", "demo.env", "Wed, 02 Oct 2024 13:45:00 +0000"},
	}

	if len(recorder.invocations) != len(expected) {
		t.Logf("expected %d invocations, got %d", len(expected), len(recorder.invocations))
		t.FailNow()
	}

	for i, invocation := range recorder.invocations {
		if invocation.Cmd != "sudo" {
			t.Logf("invocation %d not run via sudo: %s", i, invocation.Cmd)
			t.FailNow()
		}

		if !reflect.DeepEqual(invocation.Args, expected[i]) {
			t.Logf("invocation %d: expected args %v, got %v", i, expected[i], invocation.Args)
			t.FailNow()
		}
	}
}

func TestPrepareAbortsOnFailure(t *testing.T) {
	recorder := &recordingShell{failOn: "bridge", diagnostics: "bridge already exists"}
	shell.DefaultShell = recorder

	err := Prepare(context.Background(), "/exp/demo", "", "Wed, 02 Oct 2024 13:45:00 +0000")

	if err == nil {
		t.Log("expected error")
		t.FailNow()
	}

	var stepErr *StepError

	if !errors.As(err, &stepErr) {
		t.Logf("expected StepError, got %v", err)
		t.FailNow()
	}

	if stepErr.Step != "bridge start" {
		t.Logf("unexpected step %s", stepErr.Step)
		t.FailNow()
	}

	if stepErr.Diagnostics != "bridge already exists" {
		t.Logf("unexpected diagnostics %q", stepErr.Diagnostics)
		t.FailNow()
	}

	// The failing sub-step is the last one invoked.
	if len(recorder.invocations) != 2 {
		t.Logf("expected 2 invocations, got %d", len(recorder.invocations))
		t.FailNow()
	}
}

func TestReleaseSequence(t *testing.T) {
	recorder := new(recordingShell)
	shell.DefaultShell = recorder

	if err := Release(context.Background(), "/exp/demo", "demo.env"); err != nil {
		t.Logf("unexpected error %v", err)
		t.FailNow()
	}

	if len(recorder.invocations) != 1 {
		t.Logf("expected 1 invocation, got %d", len(recorder.invocations))
		t.FailNow()
	}

	expected := []string{"host/control", "stop", "/exp/demo", "demo.env"}

	if !reflect.DeepEqual(recorder.invocations[0].Args, expected) {
		t.Logf("expected args %v, got %v", expected, recorder.invocations[0].Args)
		t.FailNow()
	}
}

func TestRestoreRTSched(t *testing.T) {
	recorder := new(recordingShell)
	shell.DefaultShell = recorder

	if err := RestoreRTSched(context.Background()); err != nil {
		t.Logf("unexpected error %v", err)
		t.FailNow()
	}

	expected := []string{"sysctl", "kernel.sched_rt_runtime_us=950000"}

	if !reflect.DeepEqual(recorder.invocations[0].Args, expected) {
		t.Logf("expected args %v, got %v", expected, recorder.invocations[0].Args)
		t.FailNow()
	}
}
