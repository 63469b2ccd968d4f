package export

import (
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/moodgrid/render"
)

// SaveFrames writes each grid as a numbered PNG under dir. The grids
// are already final, so rasterizing and encoding run in parallel; the
// render fan-out stays outside the engine. Returns the file paths in
// frame order.
func SaveFrames(dir string, frames []*render.Grid, opts ImageOptions) ([]string, error) {
	paths := make([]string, len(frames))

	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, g := range frames {
		paths[i] = filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		i, g := i, g
		eg.Go(func() error {
			return SavePNG(paths[i], Image(g, opts))
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
