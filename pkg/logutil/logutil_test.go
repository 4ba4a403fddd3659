// Copyright 2024 VecKit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	SetupLogger(&LogConfig{Level: "debug", Format: "json"})
	require.NotNil(t, GetGlobalLogger())
	Info("setup ok")

	// bad level falls back to info
	SetupLogger(&LogConfig{Level: "nope"})
	require.NotNil(t, GetGlobalLogger())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.toml")
	content := "level = \"warn\"\nformat = \"json\"\nmax-size = 128\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Level)
	require.Equal(t, "json", cfg.Format)
	require.Equal(t, 128, cfg.MaxSize)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}
