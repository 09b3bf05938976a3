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

package auth

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFileSigner(t *testing.T) {
	t.Run("generate, load and sign", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wallet.json")

		generated, err := GenerateKeyFile(path)
		require.NoError(t, err)
		loaded, err := LoadKeyFile(path)
		require.NoError(t, err)

		assert.Equal(t, generated.PublicKey(), loaded.PublicKey())
		signature, err := loaded.SignMessage(context.Background(), []byte("hello"))
		require.NoError(t, err)
		assert.True(t, ed25519.Verify(generated.PublicKey(), []byte("hello"), signature))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
	t.Run("generate does not overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wallet.json")
		require.NoError(t, os.WriteFile(path, []byte("existing"), 0600))

		_, err := GenerateKeyFile(path)

		assert.ErrorContains(t, err, "unable to create keypair file")
		data, _ := os.ReadFile(path)
		assert.Equal(t, "existing", string(data))
	})
	t.Run("load errors", func(t *testing.T) {
		dir := t.TempDir()
		write := func(name, contents string) string {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
			return path
		}
		t.Run("missing file", func(t *testing.T) {
			_, err := LoadKeyFile(filepath.Join(dir, "missing.json"))
			assert.ErrorContains(t, err, "unable to read keypair file")
		})
		t.Run("not a JSON array", func(t *testing.T) {
			_, err := LoadKeyFile(write("object.json", `{}`))
			assert.ErrorContains(t, err, "unable to parse keypair file")
		})
		t.Run("wrong length", func(t *testing.T) {
			_, err := LoadKeyFile(write("short.json", `[1,2,3]`))
			assert.EqualError(t, err, "keypair file must contain 64 bytes, found 3")
		})
		t.Run("byte out of range", func(t *testing.T) {
			values := make([]int, 64)
			values[10] = 256
			_, err := LoadKeyFile(write("range.json", intsToJSON(values)))
			assert.EqualError(t, err, "keypair file contains invalid byte value at index 10: 256")
		})
		t.Run("public key mismatch", func(t *testing.T) {
			_, err := LoadKeyFile(write("mismatch.json", intsToJSON(make([]int, 64))))
			assert.EqualError(t, err, "keypair file is inconsistent: public key does not match private key")
		})
	})
}

func intsToJSON(values []int) string {
	data, _ := json.Marshal(values)
	return string(data)
}
