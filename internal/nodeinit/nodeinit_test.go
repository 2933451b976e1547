package nodeinit

import (
	"context"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"nemo/internal/common"
)

func workspace(t *testing.T, nodes ...string) {
	t.Helper()

	common.PersistBase = filepath.Join(t.TempDir(), "persist")

	for _, node := range nodes {
		if err := os.MkdirAll(common.NodeLogDir(node), 0755); err != nil {
			t.Log(err)
			t.FailNow()
		}
	}
}

func TestFanOut(t *testing.T) {
	workspace(t, "node-1", "node-2")

	var recorded [][]string

	defer func(original func(string, ...string) *exec.Cmd) { command = original }(command)

	command = func(name string, args ...string) *exec.Cmd {
		recorded = append(recorded, append([]string{name}, args...))
		return exec.Command("true")
	}

	launches := FanOut(context.Background(), []string{"node-1", "host", "node-2"}, "Wed, 02 Oct 2024 13:45:00 +0000")

	// Two roles per node, control node skipped.
	if len(launches) != 4 {
		t.Logf("expected 4 launches, got %d", len(launches))
		t.FailNow()
	}

	for _, l := range launches {
		if l.Node == common.ControlNode {
			t.Log("control node must not be initialized")
			t.FailNow()
		}

		if l.Err != nil {
			t.Logf("unexpected launch error for %s/%s: %v", l.Node, l.Role, l.Err)
			t.FailNow()
		}
	}

	if len(recorded) != 4 {
		t.Logf("expected 4 commands, got %d", len(recorded))
		t.FailNow()
	}

	for _, args := range recorded {
		if args[0] != "docker" || args[1] != "exec" {
			t.Logf("unexpected command %v", args)
			t.FailNow()
		}

		script := args[len(args)-1]

		if !strings.Contains(script, "'Wed, 02 Oct 2024 13:45:00 +0000'") {
			t.Logf("start instant not passed to initializer: %s", script)
			t.FailNow()
		}
	}

	// First node's network initializer, fully rendered.
	expected := "/experiment/node-1/init /experiment node-1 '' 'Wed, 02 Oct 2024 13:45:00 +0000'"

	if script := recorded[0][len(recorded[0])-1]; script != expected {
		t.Logf("expected script %q, got %q", expected, script)
		t.FailNow()
	}

	if container := recorded[0][2]; container != "nemo-node-1-net" {
		t.Logf("unexpected container %s", container)
		t.FailNow()
	}
}

func TestFanOutIsolatesFailures(t *testing.T) {
	workspace(t, "node-1", "node-2")

	missing := filepath.Join(t.TempDir(), "missing")

	defer func(original func(string, ...string) *exec.Cmd) { command = original }(command)

	command = func(name string, args ...string) *exec.Cmd {
		if strings.Contains(args[1], "node-1") {
			return exec.Command(missing)
		}

		return exec.Command("true")
	}

	launches := FanOut(context.Background(), []string{"node-1", "node-2"}, "Wed, 02 Oct 2024 13:45:00 +0000")

	if len(launches) != 4 {
		t.Logf("expected 4 launches, got %d", len(launches))
		t.FailNow()
	}

	for _, l := range launches {
		switch l.Node {
		case "node-1":
			if l.Err == nil {
				t.Logf("expected launch error for node-1/%s", l.Role)
				t.FailNow()
			}
		case "node-2":
			if l.Err != nil {
				t.Logf("unexpected launch error for node-2/%s: %v", l.Role, l.Err)
				t.FailNow()
			}
		}
	}

	// The failure lands in the failed node's own log file.
	body, err := ioutil.ReadFile(filepath.Join(common.NodeLogDir("node-1"), RoleNet.LogFile()))
	if err != nil {
		t.Log(err)
		t.FailNow()
	}

	if !strings.Contains(string(body), "failed to launch init") {
		t.Logf("launch failure not recorded in log: %s", body)
		t.FailNow()
	}
}

func TestRole(t *testing.T) {
	if RoleNet.Script() != "init" || RoleBiz.Script() != "biz-init" {
		t.Log("unexpected initializer scripts")
		t.FailNow()
	}

	if RoleNet.LogFile() != "init.log" || RoleBiz.LogFile() != "biz_init.log" {
		t.Log("unexpected initializer log files")
		t.FailNow()
	}

	if RoleBiz.Container("router-1") != "nemo-router-1-biz" {
		t.Logf("unexpected container %s", RoleBiz.Container("router-1"))
		t.FailNow()
	}
}
