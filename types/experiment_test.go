package types

import (
	"reflect"
	"testing"
)

func TestDecodeExperiment(t *testing.T) {
	c := &Config{
		Kind:     "Experiment",
		Metadata: ConfigMetadata{Name: "demo"},
		Spec: map[string]interface{}{
			"experimentName": "demo",
			"workDir":        "/exp/demo",
			"composeFile":    "host/docker-compose.yml",
			"scenarioDelay":  40,
			"nodes":          []string{"node-1", "host"},
		},
		Status: map[string]interface{}{
			"startTime": "Wed, 02 Oct 2024 13:45:00 +0000",
			"nodes":     []string{"node-1", "host"},
		},
	}

	exp, err := DecodeExperiment(c)
	if err != nil {
		t.Logf("unexpected error %v", err)
		t.FailNow()
	}

	if exp.Spec.ExperimentName != "demo" || exp.Spec.ScenarioDelay != 40 {
		t.Logf("unexpected spec %+v", exp.Spec)
		t.FailNow()
	}

	if !reflect.DeepEqual(exp.Spec.Nodes, []string{"node-1", "host"}) {
		t.Logf("unexpected nodes %v", exp.Spec.Nodes)
		t.FailNow()
	}

	if !exp.Status.Running() {
		t.Log("experiment with a start time should be running")
		t.FailNow()
	}
}

func TestWriteToConfigRoundTrip(t *testing.T) {
	exp := Experiment{
		Metadata: ConfigMetadata{Name: "demo"},
		Spec: &ExperimentSpec{
			ExperimentName: "demo",
			WorkDir:        "/exp/demo",
			ComposeFile:    "host/docker-compose.yml",
			ScenarioDelay:  40,
			Nodes:          []string{"node-1"},
		},
		Status: &ExperimentStatus{
			StartTime: "Wed, 02 Oct 2024 13:45:00 +0000",
			Nodes:     []string{"node-1"},
		},
	}

	c := NewConfig("demo")
	exp.WriteToConfig(c)

	decoded, err := DecodeExperiment(c)
	if err != nil {
		t.Logf("unexpected error %v", err)
		t.FailNow()
	}

	if !reflect.DeepEqual(decoded.Spec, exp.Spec) {
		t.Logf("expected spec %+v, got %+v", exp.Spec, decoded.Spec)
		t.FailNow()
	}

	if decoded.Status.StartTime != exp.Status.StartTime {
		t.Logf("expected start time %s, got %s", exp.Status.StartTime, decoded.Status.StartTime)
		t.FailNow()
	}
}

func TestStoppedExperimentNotRunning(t *testing.T) {
	var status ExperimentStatus

	if status.Running() {
		t.Log("experiment without a start time should not be running")
		t.FailNow()
	}
}
