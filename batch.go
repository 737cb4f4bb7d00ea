/*
 * batch.go, part of gosnb.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package snb

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ApplyDistortionsBatch runs ApplyDistortions on each entry concurrently, with at
// most limit entries at a time (no limit if limit <= 0). neighbours[i] is the number
// of neighbours to distort for entries[i]. Every entry uses a random source of its own
// made from opts.Rattle.Seed, so the results are the same as those of sequential calls.
// The first error cancels the entries not yet started.
func ApplyDistortionsBatch(ctx context.Context, entries []*DefectEntry, neighbours []int, magnitudes []float64, opts Options, limit int) ([]*DistortionRecordSet, error) {
	if len(neighbours) != len(entries) {
		return nil, newError(nil, "ApplyDistortionsBatch", "%d entries but %d neighbour counts", len(entries), len(neighbours))
	}
	if opts.Rattle.Src != nil {
		return nil, newError(nil, "ApplyDistortionsBatch", "a random source can't be shared among concurrent distortions, give a seed instead")
	}
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	ret := make([]*DistortionRecordSet, len(entries))
	for i, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := ApplyDistortions(e, neighbours[i], magnitudes, opts)
			if err != nil {
				return errDecorate(err, "ApplyDistortionsBatch "+e.Name)
			}
			ret[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}
