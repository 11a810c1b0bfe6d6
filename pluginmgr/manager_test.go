package pluginmgr

import (
	"testing"

	"github.com/scriptrt/scriptrt/pluginapi"
)

type fakeHandle struct {
	initOK      bool
	enabled     bool
	destroyed   bool
	setParamsOK bool
	cmds        string
	lastCmd     string
	lastArgs    string
	dispatchOK  bool
}

func (f *fakeHandle) Destroy() { f.destroyed = true }
func (f *fakeHandle) DoInit(string) bool { return f.initOK }
func (f *fakeHandle) DoEnable() { f.enabled = true }
func (f *fakeHandle) DoDispatch(cmd, args string) bool {
	f.lastCmd, f.lastArgs = cmd, args
	return f.dispatchOK
}
func (f *fakeHandle) DoCleanup() {}
func (f *fakeHandle) SetParams(pluginapi.Params) bool { return f.setParamsOK }
func (f *fakeHandle) GetParams() pluginapi.Params {
	return pluginapi.Params{"cmds": f.cmds, "vers": "v1.0.0.0"}
}
func (f *fakeHandle) GetData() string { return "" }
func (f *fakeHandle) ResetData() {}
func (f *fakeHandle) IsInitialized() bool { return f.initOK }
func (f *fakeHandle) IsEnabled() bool { return f.enabled }
func (f *fakeHandle) IsPrivileged() bool { return false }
func (f *fakeHandle) IsFaultTolerant() bool { return false }

func withFakeLoader(t *testing.T, handles map[string]*fakeHandle) {
	t.Helper()
	orig := loadSymbolsFunc
	loadSymbolsFunc = func(path string) (pluginapi.EntryFunc, pluginapi.ExitFunc, error) {
		for name, h := range handles {
			if path == libraryFilename("/plugins", name) {
				hh := h
				return func() pluginapi.Handle { return hh }, nil, nil
			}
		}
		return nil, nil, &ErrPluginLoadingFailed{Plugin: path}
	}
	t.Cleanup(func() { loadSymbolsFunc = orig })
}

func TestLoadPluginsSucceeds(t *testing.T) {
	h := &fakeHandle{initOK: true, setParamsOK: true, cmds: "UECHO,UREVERSE"}
	withFakeLoader(t, map[string]*fakeHandle{"UTILS": h})

	m, err := New("/plugins", nil, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.LoadPlugins([]string{"UTILS"}); err != nil {
		t.Fatalf("LoadPlugins: %v", err)
	}

	cmds, err := m.SupportedCommands("UTILS")
	if err != nil {
		t.Fatalf("SupportedCommands: %v", err)
	}
	if !cmds["UECHO"] || !cmds["UREVERSE"] {
		t.Fatalf("unexpected cmds: %+v", cmds)
	}
}

func TestLoadPluginsFailsWhenInitFails(t *testing.T) {
	h := &fakeHandle{initOK: false, setParamsOK: true}
	withFakeLoader(t, map[string]*fakeHandle{"UTILS": h})

	m, _ := New("/plugins", nil, 0)
	err := m.LoadPlugins([]string{"UTILS"})
	if err == nil {
		t.Fatal("expected load failure")
	}
	if !h.destroyed {
		t.Fatal("expected handle to be destroyed after failed load")
	}
}

func TestLoadPluginsTearsDownPredecessorsOnPartialFailure(t *testing.T) {
	good := &fakeHandle{initOK: true, setParamsOK: true}
	withFakeLoader(t, map[string]*fakeHandle{"UTILS": good})

	m, _ := New("/plugins", nil, 0)
	err := m.LoadPlugins([]string{"UTILS", "MATH"})
	if err == nil {
		t.Fatal("expected failure loading MATH")
	}
	if !good.destroyed {
		t.Fatal("expected UTILS to be torn down after MATH failed")
	}
}

func TestEnablePluginsVerifiesIsEnabled(t *testing.T) {
	h := &fakeHandle{initOK: true, setParamsOK: true}
	withFakeLoader(t, map[string]*fakeHandle{"UTILS": h})

	m, _ := New("/plugins", nil, 0)
	if err := m.LoadPlugins([]string{"UTILS"}); err != nil {
		t.Fatalf("LoadPlugins: %v", err)
	}
	if err := m.EnablePlugins(); err != nil {
		t.Fatalf("EnablePlugins: %v", err)
	}
}

func TestDispatchUnknownPluginFails(t *testing.T) {
	m, _ := New("/plugins", nil, 0)
	if _, err := m.Dispatch("NOPE", "CMD", ""); err == nil {
		t.Fatal("expected ErrPluginNotFound")
	}
}

func TestUnloadAllDestroysEveryDescriptor(t *testing.T) {
	h := &fakeHandle{initOK: true, setParamsOK: true}
	withFakeLoader(t, map[string]*fakeHandle{"UTILS": h})

	m, _ := New("/plugins", nil, 0)
	if err := m.LoadPlugins([]string{"UTILS"}); err != nil {
		t.Fatalf("LoadPlugins: %v", err)
	}
	m.UnloadAll()
	if !h.destroyed {
		t.Fatal("expected UnloadAll to destroy the handle")
	}
}
