package launch

import (
	"context"
	"io"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpawner struct {
	program string
	args    []string
	opts    SpawnOptions
}

func (f *fakeSpawner) Spawn(ctx context.Context, program string, args []string, opts SpawnOptions) (Process, error) {
	f.program = program
	f.args = args
	f.opts = opts
	return nil, nil
}

func TestLaunch(t *testing.T) {
	opts := testOptions(t)
	opts.GameDir = t.TempDir()
	opts.Env = []string{"FOO=bar"}
	opts.Java = "/usr/bin/java"

	spawner := &fakeSpawner{}
	_, err := Launch(context.Background(), opts, spawner, true)
	require.NoError(t, err)

	want, _ := Args(opts)
	assert.Equal(t, "/usr/bin/java", spawner.program)
	assert.Equal(t, want, spawner.args)
	assert.Equal(t, SpawnOptions{Dir: opts.GameDir, Env: []string{"FOO=bar"}, Detached: true}, spawner.opts)
}

func TestExecSpawner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}

	proc, err := ExecSpawner{}.Spawn(context.Background(), "sh", []string{"-c", "echo $GREETING; echo oops >&2; exit 3"}, SpawnOptions{
		Dir: t.TempDir(),
		Env: []string{"GREETING=hello"},
	})
	require.NoError(t, err)
	assert.NotZero(t, proc.Pid())

	var stdout, stderr []byte
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); stdout, _ = io.ReadAll(proc.Stdout()) }()
	go func() { defer wg.Done(); stderr, _ = io.ReadAll(proc.Stderr()) }()
	wg.Wait()

	code, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Equal(t, "hello", strings.TrimSpace(string(stdout)))
	assert.Equal(t, "oops", strings.TrimSpace(string(stderr)))
}

func TestExecSpawner_NotFound(t *testing.T) {
	_, err := ExecSpawner{}.Spawn(context.Background(), "/does/not/exist/java", nil, SpawnOptions{})
	assert.Error(t, err)
}

func TestExecSpawner_Detached(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}

	proc, err := ExecSpawner{}.Spawn(context.Background(), "sh", []string{"-c", "echo ignored"}, SpawnOptions{Detached: true})
	require.NoError(t, err)

	out, err := io.ReadAll(proc.Stdout())
	require.NoError(t, err)
	assert.Empty(t, out)

	code, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}
