/*
 * Credport node
 * Copyright (C) 2025 Credport community
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

package credential

import (
	"context"
	"errors"
	"testing"

	"github.com/credport/credport-node/audit"
	"github.com/credport/credport-node/core"
	"github.com/credport/credport-node/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type moduleTestContext struct {
	audit      context.Context
	store      *MockStore
	imageStore *MockImageStore
	module     *Module
}

func newModuleTestContext(t *testing.T) moduleTestContext {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	imageStore := NewMockImageStore(ctrl)
	module := New(nil)
	module.store = store
	module.imageStore = imageStore
	return moduleTestContext{
		audit:      audit.TestContext(),
		store:      store,
		imageStore: imageStore,
		module:     module,
	}
}

func TestModule_Configure(t *testing.T) {
	module := New(storage.NewTestStorageEngine(t))

	require.NoError(t, module.Configure(core.ServerConfig{}))

	assert.NotNil(t, module.Store())
	assert.NotNil(t, module.imageStore)
}

func TestModule_Store(t *testing.T) {
	t.Run("panics when unconfigured", func(t *testing.T) {
		assert.Panics(t, func() {
			New(nil).Store()
		})
	})
}

func TestModule_Create(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		test := newModuleTestContext(t)
		input := testCredential()
		created := input
		created.ID = "1"
		test.store.EXPECT().Create(gomock.Any(), input).Return(&created, nil)

		result, err := test.module.Create(test.audit, input)

		require.NoError(t, err)
		assert.Equal(t, "1", result.ID)
	})
	t.Run("error - store failure", func(t *testing.T) {
		test := newModuleTestContext(t)
		test.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db gone"))

		_, err := test.module.Create(test.audit, testCredential())

		assert.EqualError(t, err, "db gone")
	})
}

func TestModule_Get(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		test := newModuleTestContext(t)
		stored := testCredential()
		stored.ID = "1"
		test.store.EXPECT().Get(gomock.Any(), "1").Return(&stored, nil)

		result, err := test.module.Get(context.Background(), "1", "u1")

		require.NoError(t, err)
		assert.Equal(t, "1", result.ID)
	})
	t.Run("error - not owned by requester", func(t *testing.T) {
		test := newModuleTestContext(t)
		stored := testCredential()
		stored.ID = "1"
		test.store.EXPECT().Get(gomock.Any(), "1").Return(&stored, nil)

		_, err := test.module.Get(context.Background(), "1", "u2")

		assert.ErrorIs(t, err, ErrNotOwner)
	})
	t.Run("error - not found", func(t *testing.T) {
		test := newModuleTestContext(t)
		test.store.EXPECT().Get(gomock.Any(), "1").Return(nil, ErrNotFound)

		_, err := test.module.Get(context.Background(), "1", "u1")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestModule_List(t *testing.T) {
	test := newModuleTestContext(t)
	stored := testCredential()
	stored.ID = "1"
	test.store.EXPECT().List(gomock.Any(), "u1").Return([]Credential{stored}, nil)

	result, err := test.module.List(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, result, 1)
}

func TestModule_Update(t *testing.T) {
	t.Run("ok - ownership cannot be transferred", func(t *testing.T) {
		test := newModuleTestContext(t)
		stored := testCredential()
		stored.ID = "1"
		update := stored
		update.Owner = "u2"
		expected := stored
		test.store.EXPECT().Get(gomock.Any(), "1").Return(&stored, nil)
		test.store.EXPECT().Update(gomock.Any(), expected).Return(&expected, nil)

		result, err := test.module.Update(context.Background(), update, "u1")

		require.NoError(t, err)
		assert.Equal(t, "u1", result.Owner)
	})
	t.Run("error - not owned by requester", func(t *testing.T) {
		test := newModuleTestContext(t)
		stored := testCredential()
		stored.ID = "1"
		test.store.EXPECT().Get(gomock.Any(), "1").Return(&stored, nil)

		_, err := test.module.Update(context.Background(), stored, "u2")

		assert.ErrorIs(t, err, ErrNotOwner)
	})
	t.Run("error - not found", func(t *testing.T) {
		test := newModuleTestContext(t)
		update := testCredential()
		update.ID = "1"
		test.store.EXPECT().Get(gomock.Any(), "1").Return(nil, ErrNotFound)

		_, err := test.module.Update(context.Background(), update, "u1")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestModule_Delete(t *testing.T) {
	t.Run("ok - certificate image is removed", func(t *testing.T) {
		test := newModuleTestContext(t)
		stored := testCredential()
		stored.ID = "1"
		stored.ImageURL = "https://images.example.com/cert.png"
		test.store.EXPECT().Get(gomock.Any(), "1").Return(&stored, nil)
		test.store.EXPECT().Delete(gomock.Any(), "1").Return(&stored, nil)
		test.imageStore.EXPECT().Remove(gomock.Any(), stored.ImageURL).Return(nil)

		err := test.module.Delete(test.audit, "1", "u1")

		assert.NoError(t, err)
	})
	t.Run("ok - no image, nothing to clean up", func(t *testing.T) {
		test := newModuleTestContext(t)
		stored := testCredential()
		stored.ID = "1"
		test.store.EXPECT().Get(gomock.Any(), "1").Return(&stored, nil)
		test.store.EXPECT().Delete(gomock.Any(), "1").Return(&stored, nil)

		err := test.module.Delete(test.audit, "1", "u1")

		assert.NoError(t, err)
	})
	t.Run("ok - image cleanup failure does not fail the deletion", func(t *testing.T) {
		test := newModuleTestContext(t)
		stored := testCredential()
		stored.ID = "1"
		stored.ImageURL = "https://images.example.com/cert.png"
		test.store.EXPECT().Get(gomock.Any(), "1").Return(&stored, nil)
		test.store.EXPECT().Delete(gomock.Any(), "1").Return(&stored, nil)
		test.imageStore.EXPECT().Remove(gomock.Any(), stored.ImageURL).Return(errors.New("image host unreachable"))

		err := test.module.Delete(test.audit, "1", "u1")

		assert.NoError(t, err)
	})
	t.Run("error - not owned by requester", func(t *testing.T) {
		test := newModuleTestContext(t)
		stored := testCredential()
		stored.ID = "1"
		test.store.EXPECT().Get(gomock.Any(), "1").Return(&stored, nil)

		err := test.module.Delete(context.Background(), "1", "u2")

		assert.ErrorIs(t, err, ErrNotOwner)
	})
	t.Run("error - not found", func(t *testing.T) {
		test := newModuleTestContext(t)
		test.store.EXPECT().Get(gomock.Any(), "1").Return(nil, ErrNotFound)

		err := test.module.Delete(context.Background(), "1", "u1")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
