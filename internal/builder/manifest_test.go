package builder

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestManifestRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "manifest.yml")

	m := Manifest{Nodes: []string{"node-1", "node-2", "host"}}

	if err := m.Write(file); err != nil {
		t.Logf("unexpected error writing manifest: %v", err)
		t.FailNow()
	}

	read, err := ReadManifest(file)
	if err != nil {
		t.Logf("unexpected error reading manifest: %v", err)
		t.FailNow()
	}

	if !reflect.DeepEqual(read.Nodes, m.Nodes) {
		t.Logf("expected nodes %v, got %v", m.Nodes, read.Nodes)
		t.FailNow()
	}
}

func TestManifestMissing(t *testing.T) {
	if _, err := ReadManifest(filepath.Join(t.TempDir(), "manifest.yml")); err == nil {
		t.Log("expected error reading missing manifest")
		t.FailNow()
	}
}

func TestManifestResolve(t *testing.T) {
	m := Manifest{Nodes: []string{"router-1", "router-2", "sensor-1", "host"}}

	tests := []struct {
		include  []string
		exclude  []string
		expected []string
	}{
		{nil, nil, []string{"router-1", "router-2", "sensor-1", "host"}},
		{[]string{"router-*"}, nil, []string{"router-1", "router-2"}},
		{nil, []string{"sensor-*"}, []string{"router-1", "router-2", "host"}},
		{[]string{"router-*"}, []string{"router-2"}, []string{"router-1"}},
		{[]string{"*"}, []string{"*"}, nil},
	}

	for _, test := range tests {
		included, excluded := m.Resolve(test.include, test.exclude)

		if !reflect.DeepEqual(included, test.expected) {
			t.Logf("include %v exclude %v: expected %v, got %v", test.include, test.exclude, test.expected, included)
			t.FailNow()
		}

		if len(included)+len(excluded) != len(m.Nodes) {
			t.Logf("include %v exclude %v: partition does not cover all nodes", test.include, test.exclude)
			t.FailNow()
		}
	}
}
