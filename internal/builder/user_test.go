package builder

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"nemo/util/shell"

	gomock "github.com/golang/mock/gomock"
)

func TestUserBuilderNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := shell.NewMockShell(ctrl)
	m.EXPECT().CommandExists(gomock.Eq("nemo-build")).Return(false)

	shell.DefaultShell = m

	_, err := new(UserBuilder).Build(context.Background(), BuildRequest{})

	if err == nil {
		t.Log("expected error")
		t.FailNow()
	}

	if !errors.Is(err, ErrBuilderNotFound) {
		t.Log("expected BuilderNotFound error")
		t.FailNow()
	}
}

func TestUserBuilderBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := shell.NewMockShell(ctrl)
	m.EXPECT().CommandExists(gomock.Eq("nemo-build")).Return(true)

	opts := []shell.Option{}

	m.EXPECT().ExecCommand(gomock.AssignableToTypeOf(context.Background()), gomock.AssignableToTypeOf(opts)).Return([]byte(`["node-1","node-2"]`), nil, nil)

	shell.DefaultShell = m

	nodes, err := new(UserBuilder).Build(context.Background(), BuildRequest{ConfigFiles: []string{"experiment.cfg"}})

	if err != nil {
		t.Logf("unexpected error %v", err)
		t.FailNow()
	}

	if !reflect.DeepEqual(nodes, []string{"node-1", "node-2"}) {
		t.Logf("unexpected nodes %v", nodes)
		t.FailNow()
	}
}

func TestUserBuilderBadNodeList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := shell.NewMockShell(ctrl)
	m.EXPECT().CommandExists(gomock.Eq("nemo-build")).Return(true)

	opts := []shell.Option{}

	m.EXPECT().ExecCommand(gomock.AssignableToTypeOf(context.Background()), gomock.AssignableToTypeOf(opts)).Return([]byte(`not json`), nil, nil)

	shell.DefaultShell = m

	if _, err := new(UserBuilder).Build(context.Background(), BuildRequest{}); err == nil {
		t.Log("expected error for unparsable node list")
		t.FailNow()
	}
}

func TestUserBuilderClean(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := shell.NewMockShell(ctrl)
	m.EXPECT().CommandExists(gomock.Eq("nemo-build")).Return(true)

	opts := []shell.Option{}

	m.EXPECT().ExecCommand(gomock.AssignableToTypeOf(context.Background()), gomock.AssignableToTypeOf(opts)).Return(nil, nil, nil)

	shell.DefaultShell = m

	if err := new(UserBuilder).Clean(context.Background(), CleanRequest{Nodes: []string{"node-1"}}); err != nil {
		t.Logf("unexpected error %v", err)
		t.FailNow()
	}
}
