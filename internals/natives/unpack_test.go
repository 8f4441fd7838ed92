package natives

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJar(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lwjgl-platform-2.9.4-natives-linux.jar")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range files {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestZipUnpacker_Unpack(t *testing.T) {
	jar := writeJar(t, map[string]string{
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0",
		"liblwjgl.so":          "elf",
		"linux/libopenal.so":   "more elf",
	})

	fs := afero.NewMemMapFs()
	u := &ZipUnpacker{Fs: fs}
	require.NoError(t, u.Unpack(jar, "/natives", minecraft.DefaultExtractExclude))

	content, err := afero.ReadFile(fs, "/natives/liblwjgl.so")
	require.NoError(t, err)
	assert.Equal(t, "elf", string(content))

	content, err = afero.ReadFile(fs, "/natives/linux/libopenal.so")
	require.NoError(t, err)
	assert.Equal(t, "more elf", string(content))

	exists, _ := afero.Exists(fs, "/natives/META-INF/MANIFEST.MF")
	assert.False(t, exists, "META-INF should be excluded")
}

func TestZipUnpacker_DirectoryEntries(t *testing.T) {
	jar := writeJar(t, map[string]string{
		"linux/":            "",
		"linux/x64/":        "",
		"linux/x64/lib.so":  "elf",
		"META-INF/":         "",
		"META-INF/INDEX.LI": "x",
	})

	fs := afero.NewMemMapFs()
	require.NoError(t, (&ZipUnpacker{Fs: fs}).Unpack(jar, "/natives", minecraft.DefaultExtractExclude))

	isDir, err := afero.IsDir(fs, "/natives/linux/x64")
	require.NoError(t, err)
	assert.True(t, isDir)

	content, err := afero.ReadFile(fs, "/natives/linux/x64/lib.so")
	require.NoError(t, err)
	assert.Equal(t, "elf", string(content))

	exists, _ := afero.Exists(fs, "/natives/META-INF")
	assert.False(t, exists)
}

func TestZipUnpacker_NoExcludes(t *testing.T) {
	jar := writeJar(t, map[string]string{"META-INF/MANIFEST.MF": "x"})

	fs := afero.NewMemMapFs()
	require.NoError(t, (&ZipUnpacker{Fs: fs}).Unpack(jar, "/natives", nil))

	exists, _ := afero.Exists(fs, "/natives/META-INF/MANIFEST.MF")
	assert.True(t, exists)
}

func TestZipUnpacker_ZipSlip(t *testing.T) {
	jar := writeJar(t, map[string]string{"../../evil.so": "x"})

	err := (&ZipUnpacker{Fs: afero.NewMemMapFs()}).Unpack(jar, "/natives", nil)
	assert.Error(t, err)
}

func TestZipUnpacker_MissingArchive(t *testing.T) {
	err := NewZipUnpacker().Unpack(filepath.Join(t.TempDir(), "missing.jar"), t.TempDir(), nil)
	assert.Error(t, err)
}

func TestLibrary_ExtractNatives(t *testing.T) {
	libsDir := t.TempDir()
	lib, err := minecraft.ParseLibrary(map[string]interface{}{
		"name":    "org.lwjgl.lwjgl:lwjgl-platform:2.9.4",
		"natives": map[string]interface{}{"linux": "natives-linux"},
	}, minecraft.DefaultRepository)
	require.NoError(t, err)

	linux := minecraft.Platform{Name: "linux", Arch: "x64"}
	artifact, ok := lib.NativeArtifact(linux)
	require.True(t, ok)

	src := writeJar(t, map[string]string{"liblwjgl.so": "elf", "META-INF/x": "y"})
	target := filepath.Join(libsDir, filepath.FromSlash(artifact.Path))
	require.NoError(t, os.MkdirAll(filepath.Dir(target), os.ModePerm))
	require.NoError(t, os.Rename(src, target))

	fs := afero.NewMemMapFs()
	require.NoError(t, lib.ExtractNatives(linux, libsDir, "/natives", &ZipUnpacker{Fs: fs}))

	exists, _ := afero.Exists(fs, "/natives/liblwjgl.so")
	assert.True(t, exists)
	exists, _ = afero.Exists(fs, "/natives/META-INF/x")
	assert.False(t, exists)
}
