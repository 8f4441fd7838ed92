package instances

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/minepkg/mclaunch/internals/downloadmgr"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Stages of Fetch, in order
const (
	StageClient     = "client"
	StageLibraries  = "libraries"
	StageAssetIndex = "asset index"
	StageAssets     = "assets"
)

// FetchReport contains the results of every stage of a fetch
type FetchReport struct {
	Stages  []string
	Results map[string]downloadmgr.Results
}

// Failed returns all failed resources of all stages
func (f *FetchReport) Failed() downloadmgr.Results {
	failed := make(downloadmgr.Results, 0)
	for _, stage := range f.Stages {
		failed = append(failed, f.Results[stage].Failed()...)
	}
	return failed
}

// Err combines the errors of all stages
func (f *FetchReport) Err() error {
	var result *multierror.Error
	for _, stage := range f.Stages {
		if err := f.Results[stage].Err(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, stage))
		}
	}
	return result.ErrorOrNil()
}

func (f *FetchReport) add(stage string, results downloadmgr.Results) {
	f.Stages = append(f.Stages, stage)
	f.Results[stage] = results
}

// Fetch downloads everything required to launch v on platform. Files that
// exist and match their hash are skipped. A failing resource does not stop the fetch.
// The returned error is only set if the asset index could not be read,
// check the report for failed downloads
func (i *Instance) Fetch(ctx context.Context, v *minecraft.Version, platform minecraft.Platform, features minecraft.Features) (*FetchReport, error) {
	report := &FetchReport{Results: make(map[string]downloadmgr.Results)}
	admission := downloadmgr.Limit(i.Concurrency, downloadmgr.SkipIfValid(true))

	report.add(StageClient, i.download(ctx, StageClient, []*downloadmgr.Resource{
		downloadmgr.ClientResource(v, i.VersionsDir()),
	}, admission))

	report.add(StageLibraries, i.download(ctx, StageLibraries,
		downloadmgr.LibraryResources(v.Libraries, platform, features, i.LibrariesDir()),
		admission,
	))

	index := downloadmgr.AssetIndexResource(v, i.AssetsDir())
	indexResults := i.download(ctx, StageAssetIndex, []*downloadmgr.Resource{index}, admission)
	report.add(StageAssetIndex, indexResults)
	if !indexResults.OK() {
		// without index there are no assets to fetch
		return report, nil
	}

	buf, err := afero.ReadFile(i.fs(), index.Path)
	if err != nil {
		return report, err
	}
	assets, err := minecraft.ParseAssetIndex(buf)
	if err != nil {
		return report, err
	}

	report.add(StageAssets, i.download(ctx, StageAssets,
		downloadmgr.AssetResources(assets, i.AssetsDir(), i.AssetsBase),
		admission,
	))
	return report, nil
}

func (i *Instance) download(ctx context.Context, stage string, resources []*downloadmgr.Resource, admission downloadmgr.Admission) downloadmgr.Results {
	for _, r := range resources {
		r.Fs = i.Fs
		if i.Client != nil {
			r.Client = i.Client.R.GetClient()
		}
	}

	mgr := downloadmgr.New()
	mgr.OnEvent = i.OnEvent
	if i.OnProgress != nil {
		i.OnProgress(stage, 0)
		mgr.OnProgress = func(p int) { i.OnProgress(stage, p) }
	}
	mgr.Add(resources...)
	return mgr.Start(ctx, admission)
}
