package launch

import (
	"os"

	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/pkg/errors"
)

// PrepareNatives extracts the natives of all required libraries into opts.NativesDir
func PrepareNatives(opts *Options, unpacker minecraft.Unpacker) error {
	if err := os.MkdirAll(opts.NativesDir, os.ModePerm); err != nil {
		return err
	}
	for _, lib := range opts.Version.Libraries.Required(opts.Platform, opts.features()) {
		if !lib.HasNatives(opts.Platform.Name) {
			continue
		}
		if err := lib.ExtractNatives(opts.Platform, opts.LibrariesDir, opts.NativesDir, unpacker); err != nil {
			return errors.Wrapf(err, "could not extract natives of %s", lib.Name)
		}
	}
	return nil
}
