package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Defaults(t *testing.T) {
	v := viper.New()
	t.Setenv("MCLAUNCH_ROOT", t.TempDir())
	require.NoError(t, Init(v, ""))

	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, minecraft.DefaultRepository, c.Repository)
	assert.Equal(t, minecraft.DefaultAssetsBase, c.AssetsBase)
	assert.Equal(t, 16, c.Concurrency)
	assert.Equal(t, JavaAuto, c.Java)
}

func TestInit_FileAndEnv(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("repository = \"https://maven.example.com\"\nconcurrency = 4\njava = \"/opt/java\"\n"), 0644))

	t.Setenv("MCLAUNCH_ROOT", root)
	t.Setenv("MCLAUNCH_JAVA", "/usr/bin/java")

	v := viper.New()
	require.NoError(t, Init(v, ""))
	c, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "https://maven.example.com", c.Repository)
	assert.Equal(t, 4, c.Concurrency)
	assert.Equal(t, "/usr/bin/java", c.Java, "env wins over file")
	assert.Equal(t, root, c.Root)
}

func TestInit_MissingExplicitFile(t *testing.T) {
	err := Init(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	val, err := Set(v, "Concurrency", "8")
	require.NoError(t, err)
	assert.Equal(t, 8, val)
	assert.Equal(t, 8, v.GetInt("concurrency"))

	_, err = Set(v, "verbose", "yes")
	require.NoError(t, err)
	assert.True(t, v.GetBool("verbose"))

	_, err = Set(v, "concurrency", "-1")
	assert.Error(t, err)
	_, err = Set(v, "verbose", "maybe")
	assert.Error(t, err)
	_, err = Set(v, "unknown", "1")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	root := t.TempDir()
	v := viper.New()
	SetDefaults(v)
	v.Set("root", root)
	_, err := Set(v, "java", "/opt/java")
	require.NoError(t, err)

	path, err := Write(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "config.toml"), path)

	other := viper.New()
	require.NoError(t, Init(other, path))
	assert.Equal(t, "/opt/java", other.GetString("java"))
}
