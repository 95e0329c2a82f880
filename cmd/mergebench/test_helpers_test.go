package main

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"mergebench/internal/benchmark"
	"mergebench/internal/config"
	"mergebench/internal/db"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// executeCommand executes a cobra command and returns its output.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	return executeCommandWithInput(root, "", args...)
}

// executeCommandWithInput runs root with input on stdin. A mocked exit is
// reported as an error.
func executeCommandWithInput(root *cobra.Command, input string, args ...string) (output string, err error) {
	resetFlags(root)
	b := new(bytes.Buffer)

	// Mock exit
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				output, err = b.String(), fmt.Errorf("%s", s)
				return
			}
			panic(r) // Re-panic actual panics
		}
	}()

	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(b)
	root.SetErr(b)
	root.SetIn(bytes.NewBufferString(input))
	err = root.Execute()
	return b.String(), err
}

// resetFlags resets all flags to their default values.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			// Slice defaults render as "[]", which Set would append to.
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				sv.Replace(nil)
			} else {
				f.Value.Set(f.DefValue)
			}
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// inTempDir runs the test from a fresh working directory so relative
// dataset, report and history paths stay isolated.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MERGEBENCH_HISTORY_TYPE", "sqlite")
	t.Setenv("MERGEBENCH_ON_DEFECT", "flag")
	return dir
}

// memHistory is an in-memory db.Store.
type memHistory struct {
	mu     sync.Mutex
	suites []benchmark.Suite
}

func (m *memHistory) Save(s benchmark.Suite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suites = append(m.suites, s)
	return nil
}

func (m *memHistory) LoadAll() ([]benchmark.Suite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]benchmark.Suite(nil), m.suites...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *memHistory) LoadLatest() (*benchmark.Suite, error) {
	all, _ := m.LoadAll()
	if len(all) == 0 {
		return nil, nil
	}
	return &all[len(all)-1], nil
}

func (m *memHistory) Close() error { return nil }

// useHistory swaps the history factory for the duration of the test.
func useHistory(t *testing.T, store db.Store) {
	t.Helper()
	old := historyStoreFactory
	historyStoreFactory = func(config.Settings) (db.Store, error) { return store, nil }
	t.Cleanup(func() { historyStoreFactory = old })
}
