// Package batch turns directories of backgrounds and lists of quotes into
// render jobs and runs them on a bounded pool of workers.
package batch

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	imagepkg "github.com/youruser/quotecard/internal/image"
)

type Flags struct {
	IncludeLogo      bool
	IncludeTrademark bool
}

// Plan builds the job list. With all set every image is paired with every
// quote, image-major. Otherwise image i gets quote i and images without a
// quote are left out. Job indices are sequential from zero.
func Plan(images, quotes []string, all bool, f Flags) []imagepkg.RenderJob {
	var jobs []imagepkg.RenderJob
	add := func(img, q string) {
		jobs = append(jobs, imagepkg.RenderJob{
			Index:            len(jobs),
			Background:       img,
			Quote:            q,
			IncludeLogo:      f.IncludeLogo,
			IncludeTrademark: f.IncludeTrademark,
		})
	}
	if all {
		for _, img := range images {
			for _, q := range quotes {
				add(img, q)
			}
		}
		return jobs
	}
	for i, img := range images {
		if i >= len(quotes) {
			break
		}
		add(img, quotes[i])
	}
	return jobs
}

type Renderer interface {
	Render(job imagepkg.RenderJob) (imagepkg.Result, error)
}

// Report is the outcome of one job.
type Report struct {
	Job    imagepkg.RenderJob
	Result imagepkg.Result
	Err    error
}

// Run renders jobs with at most workers in flight. A failing job never stops
// the others; cancelling ctx skips jobs that have not started yet.
// Reports are returned in job order.
func Run(ctx context.Context, r Renderer, jobs []imagepkg.RenderJob, workers int, log logrus.FieldLogger) []Report {
	if workers < 1 {
		workers = 1
	}
	reports := make([]Report, len(jobs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			reports[i].Job = job
			if err := ctx.Err(); err != nil {
				reports[i].Err = err
				return nil
			}
			log := log.WithFields(logrus.Fields{"job": job.Index, "background": job.Background})
			log.WithField("quote", job.Quote).Info("Overlaying quote")

			res, err := r.Render(job)
			reports[i].Result = res
			reports[i].Err = err
			if err != nil {
				var assetErr *imagepkg.AssetError
				if errors.As(err, &assetErr) {
					log.WithError(err).Warn("skipping job")
				} else {
					log.WithError(err).Error("render failed")
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

// Failed counts reports with an error.
func Failed(reports []Report) int {
	n := 0
	for _, r := range reports {
		if r.Err != nil {
			n++
		}
	}
	return n
}
