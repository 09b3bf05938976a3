/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"errors"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewSystem(t *testing.T) {
	system := NewSystem()
	assert.NotNil(t, system)
	assert.Empty(t, system.engines)
}

func TestSystem_Start(t *testing.T) {
	ctrl := gomock.NewController(t)

	r := NewMockRunnable(ctrl)
	r.EXPECT().Start()

	system := NewSystem()
	system.RegisterEngine(&TestEngine{})
	system.RegisterEngine(r)
	assert.NoError(t, system.Start())
}

func TestSystem_Shutdown(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := NewMockRunnable(ctrl)
		r.EXPECT().Shutdown()

		system := NewSystem()
		system.RegisterEngine(&TestEngine{})
		system.RegisterEngine(r)

		assert.NoError(t, system.Shutdown())
	})
	t.Run("engines are shut down in reverse order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		first := NewMockRunnable(ctrl)
		second := NewMockRunnable(ctrl)
		gomock.InOrder(
			second.EXPECT().Shutdown(),
			first.EXPECT().Shutdown(),
		)

		system := NewSystem()
		system.RegisterEngine(first)
		system.RegisterEngine(second)

		assert.NoError(t, system.Shutdown())
	})
	t.Run("error does not stop other engines from shutting down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := NewMockRunnable(ctrl)
		r.EXPECT().Shutdown()

		system := NewSystem()
		system.RegisterEngine(r)
		system.RegisterEngine(&TestEngine{ShutdownError: true})

		assert.EqualError(t, system.Shutdown(), "failure")
	})
}

func TestSystem_Configure(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := NewMockConfigurable(ctrl)
		r.EXPECT().Configure(gomock.Any())

		system := NewSystem()
		system.Config.Datadir = t.TempDir()
		system.RegisterEngine(&TestEngine{})
		system.RegisterEngine(r)

		assert.NoError(t, system.Configure())
	})
	t.Run("error is wrapped with engine name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := NewMockConfigurable(ctrl)
		r.EXPECT().Configure(gomock.Any()).Return(errors.New("failed"))

		system := NewSystem()
		system.Config.Datadir = t.TempDir()
		system.RegisterEngine(r)

		err := system.Configure()

		assert.ErrorContains(t, err, "unable to configure *core.MockConfigurable: failed")
	})
	t.Run("unable to create datadir", func(t *testing.T) {
		dir := t.TempDir()
		file := path.Join(dir, "file")
		require.NoError(t, os.WriteFile(file, []byte{}, 0644))
		system := NewSystem()
		system.Config = &ServerConfig{Datadir: path.Join(file, "data")}

		assert.ErrorContains(t, system.Configure(), "unable to create datadir")
	})
}

func TestSystem_RunWith(t *testing.T) {
	newSystem := func(t *testing.T, r *MockRunnable) *System {
		system := NewSystem()
		system.Config.Datadir = t.TempDir()
		system.RegisterEngine(r)
		return system
	}
	t.Run("engines run while fn is called", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := NewMockRunnable(ctrl)
		called := false
		gomock.InOrder(
			r.EXPECT().Start(),
			r.EXPECT().Shutdown(),
		)

		err := newSystem(t, r).RunWith(func() error {
			called = true
			return nil
		})

		assert.NoError(t, err)
		assert.True(t, called)
	})
	t.Run("error of fn is returned after shutdown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := NewMockRunnable(ctrl)
		r.EXPECT().Start()
		r.EXPECT().Shutdown().Return(errors.New("shutdown failed"))

		err := newSystem(t, r).RunWith(func() error {
			return errors.New("fn failed")
		})

		assert.EqualError(t, err, "fn failed")
	})
	t.Run("fn is not called when engines fail to start", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := NewMockRunnable(ctrl)
		r.EXPECT().Start().Return(errors.New("start failed"))

		err := newSystem(t, r).RunWith(func() error {
			t.Fatal("fn should not be called")
			return nil
		})

		assert.EqualError(t, err, "start failed")
	})
}

func TestSystem_EchoCreator(t *testing.T) {
	system := NewSystem()

	server, err := system.EchoCreator()

	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestSystem_Diagnostics(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := NewMockDiagnosable(ctrl)
	r.EXPECT().Diagnostics().Return([]DiagnosticResult{&GenericDiagnosticResult{Title: "Result"}})

	system := NewSystem()
	system.RegisterEngine(&TestEngine{})
	system.RegisterEngine(r)

	assert.Len(t, system.Diagnostics(), 1)
}

func TestSystem_VisitEnginesE(t *testing.T) {
	system := NewSystem()
	system.RegisterEngine(&TestEngine{})
	system.RegisterEngine(&TestEngine{})
	expectedErr := errors.New("function should stop because an error occurred")
	timesCalled := 0

	actualErr := system.VisitEnginesE(func(engine Engine) error {
		timesCalled++
		return expectedErr
	})

	assert.Equal(t, 1, timesCalled)
	assert.Equal(t, expectedErr, actualErr)
}

func TestSystem_Load(t *testing.T) {
	e := &TestEngine{}
	system := NewSystem()
	system.RegisterEngine(e)
	flags := FlagSet()
	flags.AddFlagSet(testFlagSet())
	require.NoError(t, flags.Parse([]string{"--testengine.key", "value"}))

	t.Run("loads config and injects it into engines", func(t *testing.T) {
		require.NoError(t, system.Load(flags))

		assert.Equal(t, "value", e.TestConfig.Key)
		assert.Equal(t, []string{"default", "default"}, e.TestConfig.List)
	})
}
