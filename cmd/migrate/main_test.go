package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LexovateAyacucho/qhoar-web/internal/config"
)

type migratorStub struct {
	calls   []string
	steps   int
	err     error
	version uint
	verErr  error
	closed  bool
}

func (m *migratorStub) Up() error {
	m.calls = append(m.calls, "up")
	return m.err
}

func (m *migratorStub) Down() error {
	m.calls = append(m.calls, "down")
	return m.err
}

func (m *migratorStub) Steps(n int) error {
	m.calls = append(m.calls, "steps")
	m.steps = n
	return m.err
}

func (m *migratorStub) Version() (uint, bool, error) {
	return m.version, false, m.verErr
}

func (m *migratorStub) Close() (error, error) {
	m.closed = true
	return nil, nil
}

func withHooks(t *testing.T, stub *migratorStub) *bytes.Buffer {
	t.Helper()
	origEnv, origCfg, origNew, origOut := loadDotenv, loadCfg, newMigrator, stdout
	t.Cleanup(func() {
		loadDotenv, loadCfg, newMigrator, stdout = origEnv, origCfg, origNew, origOut
	})
	var out bytes.Buffer
	loadDotenv = func() error { return errors.New("no .env") }
	loadCfg = func() *config.Config {
		return &config.Config{Database: config.DatabaseConfig{Host: "localhost", Port: 5432, DBName: "qhoar"}}
	}
	newMigrator = func(dsn string) (migrator, error) {
		assert.Contains(t, dsn, "postgres://")
		return stub, nil
	}
	stdout = &out
	return &out
}

func TestRun_Commands(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantCalls []string
		wantSteps int
	}{
		{name: "up", args: []string{"up"}, wantCalls: []string{"up"}},
		{name: "down", args: []string{"down"}, wantCalls: []string{"down"}},
		{name: "up steps", args: []string{"-steps", "2", "up"}, wantCalls: []string{"steps"}, wantSteps: 2},
		{name: "down steps", args: []string{"-steps", "1", "down"}, wantCalls: []string{"steps"}, wantSteps: -1},
		{name: "version", args: []string{"version"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &migratorStub{version: 3}
			out := withHooks(t, stub)

			require.NoError(t, run(tt.args))
			assert.Equal(t, tt.wantCalls, stub.calls)
			assert.Equal(t, tt.wantSteps, stub.steps)
			assert.True(t, stub.closed)
			assert.Equal(t, "version=3 dirty=false\n", out.String())
		})
	}
}

func TestRun_NoChangeIsSuccess(t *testing.T) {
	stub := &migratorStub{err: migrate.ErrNoChange, verErr: migrate.ErrNilVersion}
	out := withHooks(t, stub)

	require.NoError(t, run([]string{"up"}))
	assert.Equal(t, "version=none\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	withHooks(t, &migratorStub{})
	assert.EqualError(t, run(nil), usage)
	assert.EqualError(t, run([]string{"sideways"}), usage)
	assert.Error(t, run([]string{"-steps", "-1", "up"}))
	assert.Error(t, run([]string{"-unknown"}))

	withHooks(t, &migratorStub{err: errors.New("dirty database")})
	assert.ErrorContains(t, run([]string{"up"}), "migrate up")

	withHooks(t, &migratorStub{verErr: errors.New("conn reset")})
	assert.EqualError(t, run([]string{"version"}), "conn reset")

	withHooks(t, nil)
	newMigrator = func(string) (migrator, error) { return nil, errors.New("bad dsn") }
	assert.ErrorContains(t, run([]string{"up"}), "init migrator")
}
