package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/salidas/internal/repository"
	"github.com/maheshrc27/salidas/internal/service"
)

// sweepTarget pairs a bucket prefix with the URLs that still reference
// objects under it.
type sweepTarget struct {
	bucket     service.Bucket
	prefix     string
	referenced func(ctx context.Context) ([]string, error)
}

// DefaultGracePeriod keeps fresh uploads out of the sweep: every upload
// path stores the file before it writes the row pointing at it.
const DefaultGracePeriod = time.Hour

// OrphanSweepJob removes stored files that no row points at anymore. It
// catches objects left behind when an advisory cleanup failed.
type OrphanSweepJob struct {
	er      repository.EventRepository
	pr      repository.PhotoRepository
	vr      repository.VideoRepository
	pf      repository.ProfileRepository
	storage service.ObjectStorage

	// Objects modified less than GracePeriod ago are never removed.
	GracePeriod time.Duration
	now         func() time.Time
}

func NewOrphanSweepJob(
	er repository.EventRepository,
	pr repository.PhotoRepository,
	vr repository.VideoRepository,
	pf repository.ProfileRepository,
	storage service.ObjectStorage) *OrphanSweepJob {
	return &OrphanSweepJob{
		er:      er,
		pr:      pr,
		vr:      vr,
		pf:      pf,
		storage: storage,

		GracePeriod: DefaultGracePeriod,
		now:         time.Now,
	}
}

func (c *OrphanSweepJob) targets() []sweepTarget {
	return []sweepTarget{
		{service.BucketCovers, "covers/", c.er.ListCoverURLs},
		{service.BucketAlbums, "albums/", c.pr.ListURLs},
		{service.BucketVideos, "event-videos/", c.vr.ListURLs},
		{service.BucketAvatars, "", c.avatarURLs},
	}
}

func (c *OrphanSweepJob) avatarURLs(ctx context.Context) ([]string, error) {
	profiles, err := c.pf.List(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if p.AvatarURL != nil {
			urls = append(urls, *p.AvatarURL)
		}
	}
	return urls, nil
}

// Sweep is the cron entry point.
func (c *OrphanSweepJob) Sweep() {
	c.Run(context.Background())
}

// Run sweeps every bucket and returns how many objects were removed.
func (c *OrphanSweepJob) Run(ctx context.Context) int {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		removed int
	)

	for _, target := range c.targets() {
		wg.Add(1)

		go func(target sweepTarget) {
			defer wg.Done()

			n, err := c.sweep(ctx, target)
			if err != nil {
				slog.Info("orphan sweep failed", "bucket", target.bucket, "err", err)
				return
			}

			mu.Lock()
			removed += n
			mu.Unlock()
		}(target)
	}

	wg.Wait()
	slog.Info("orphan sweep finished", "removed", removed)
	return removed
}

// sweep only considers objects older than the grace period. Their rows,
// if any, were written long before the references are loaded.
func (c *OrphanSweepJob) sweep(ctx context.Context, target sweepTarget) (int, error) {
	objects, err := c.storage.List(ctx, target.bucket, target.prefix)
	if err != nil {
		return 0, err
	}

	cutoff := c.now().Add(-c.GracePeriod)
	paths := make([]string, 0, len(objects))
	for _, obj := range objects {
		if obj.LastModified.After(cutoff) {
			continue
		}
		paths = append(paths, obj.Path)
	}
	if len(paths) == 0 {
		return 0, nil
	}

	urls, err := target.referenced(ctx)
	if err != nil {
		return 0, err
	}

	keep := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if p, ok := c.storage.PathFromURL(target.bucket, u); ok {
			keep[p] = struct{}{}
		}
	}

	var orphans []string
	for _, p := range paths {
		if _, ok := keep[p]; !ok {
			orphans = append(orphans, p)
		}
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	if err := c.storage.Remove(ctx, target.bucket, orphans); err != nil {
		return 0, err
	}
	slog.Info("orphans removed", "bucket", target.bucket, "count", len(orphans))
	return len(orphans), nil
}
