package downloadmgr

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"
)

// Admission decides how one resource is handled (download it, skip it …)
// and reports if the resource ended up usable. The error is reserved for
// programmer errors like an unsupported hash algorithm.
type Admission func(ctx context.Context, r *Resource, handler EventHandler) (bool, error)

// Always downloads every resource
func Always(checkAfter bool) Admission {
	return func(ctx context.Context, r *Resource, handler EventHandler) (bool, error) {
		return r.Download(ctx, checkAfter, handler)
	}
}

// SkipIfExists only downloads resources that do not exist yet
func SkipIfExists(checkAfter bool) Admission {
	return func(ctx context.Context, r *Resource, handler EventHandler) (bool, error) {
		if r.Exists() {
			handler.debug(r.Path + " exists, skipping")
			return true, nil
		}
		return r.Download(ctx, checkAfter, handler)
	}
}

// SkipIfValid only downloads resources that are missing or do not match their hash
func SkipIfValid(checkAfter bool) Admission {
	return func(ctx context.Context, r *Resource, handler EventHandler) (bool, error) {
		if r.Exists() {
			err := r.Verify()
			if err == nil {
				handler.debug(r.Path + " is valid, skipping")
				return true, nil
			}
			handler.debug(r.Path + " is invalid, downloading again: " + err.Error())
		}
		return r.Download(ctx, checkAfter, handler)
	}
}

// Limit wraps admission so at most n resources are handled at the same time.
// n <= 0 returns admission unchanged.
func Limit(n int64, admission Admission) Admission {
	if n <= 0 {
		return admission
	}
	sem := semaphore.NewWeighted(n)
	return func(ctx context.Context, r *Resource, handler EventHandler) (bool, error) {
		if err := sem.Acquire(ctx, 1); err != nil {
			handler.fail(err)
			return false, nil
		}
		defer sem.Release(1)
		return admission(ctx, r, handler)
	}
}

// Result is the outcome of one resource
type Result struct {
	Resource *Resource
	// OK is true if the resource is usable
	OK bool
	// Err is the terminal error event or the error returned by the admission
	Err error
}

// Results are the outcomes of a batch in the order of the resources
type Results []Result

// Failed returns all results that are not usable
func (r Results) Failed() Results {
	failed := make(Results, 0)
	for _, result := range r {
		if !result.OK {
			failed = append(failed, result)
		}
	}
	return failed
}

// OK returns true if every resource is usable
func (r Results) OK() bool {
	return len(r.Failed()) == 0
}

// Err combines the errors of all failed resources. nil if everything is usable
func (r Results) Err() error {
	var result *multierror.Error
	for _, failed := range r.Failed() {
		err := failed.Err
		if err == nil {
			err = fmt.Errorf("download of %s failed", failed.Resource.URL)
		}
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// DownloadManager includes a queue to download
type DownloadManager struct {
	queue []*Resource
	// OnEvent receives every event of every resource. It is called concurrently
	OnEvent func(r *Resource, e Event)
	// OnProgress is called with the percentage of finished resources
	OnProgress func(p int)
}

// New creates a new downloadmgr
func New() *DownloadManager {
	return &DownloadManager{}
}

// Add adds new resources to the queue
func (d *DownloadManager) Add(r ...*Resource) {
	d.queue = append(d.queue, r...)
}

// Len returns the number of queued resources
func (d *DownloadManager) Len() int {
	return len(d.queue)
}

// Start handles all queued resources with admission and empties the queue
func (d *DownloadManager) Start(ctx context.Context, admission Admission) Results {
	queue := d.queue
	d.queue = nil
	return d.Download(ctx, queue, admission)
}

// Download handles all resources concurrently with admission.
// There is no limit on concurrent downloads, wrap admission with [Limit] if needed.
// A failing resource does not stop the others.
func (d *DownloadManager) Download(ctx context.Context, resources []*Resource, admission Admission) Results {
	results := make(Results, len(resources))
	if len(resources) == 0 {
		return results
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		finished int
	)
	wg.Add(len(resources))
	for i, r := range resources {
		go func(i int, r *Resource) {
			defer wg.Done()

			var terminal error
			handler := func(e Event) {
				if e.Kind == EventError {
					terminal = e.Err
				}
				if d.OnEvent != nil {
					d.OnEvent(r, e)
				}
			}

			ok, err := admission(ctx, r, handler)
			if err == nil {
				err = terminal
			}
			results[i] = Result{Resource: r, OK: ok && err == nil, Err: err}

			if d.OnProgress != nil {
				mu.Lock()
				finished++
				d.OnProgress(finished * 100 / len(resources))
				mu.Unlock()
			}
		}(i, r)
	}
	wg.Wait()

	return results
}
