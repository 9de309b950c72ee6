package loadgen

import (
	"errors"
	"fmt"
)

// ErrInconsistent reports a ranking or leaderboard that breaks ordering.
var ErrInconsistent = errors.New("inconsistent result")

const scoreTolerance = 0.005

// VerifyRanking checks that a finished screening ranks every submitted
// candidate exactly once, by descending score with ranks 1..n.
func VerifyRanking(req Request, s Screening) error {
	if s.Status != "done" {
		return fmt.Errorf("%w: screening %s is %s: %s", ErrInconsistent, s.ID, s.Status, s.Error)
	}
	if len(s.Ranking) != len(req.Candidates) {
		return fmt.Errorf("%w: screening %s ranked %d of %d candidates", ErrInconsistent, s.ID, len(s.Ranking), len(req.Candidates))
	}
	want := make(map[string]struct{}, len(req.Candidates))
	for _, c := range req.Candidates {
		want[c.ID] = struct{}{}
	}
	for i, r := range s.Ranking {
		if r.Rank != i+1 {
			return fmt.Errorf("%w: screening %s position %d has rank %d", ErrInconsistent, s.ID, i+1, r.Rank)
		}
		if i > 0 && r.Score > s.Ranking[i-1].Score {
			return fmt.Errorf("%w: screening %s rank %d scores above rank %d", ErrInconsistent, s.ID, r.Rank, r.Rank-1)
		}
		if _, ok := want[r.ID]; !ok {
			return fmt.Errorf("%w: screening %s ranked unknown candidate %q", ErrInconsistent, s.ID, r.ID)
		}
		delete(want, r.ID)
	}
	return nil
}

// VerifyLeaderboard checks ordering of a leaderboard page and that its top
// score is at least the best score seen in any screening. Earlier runs may
// have left better candidates behind.
func VerifyLeaderboard(entries []Entry, best float64) error {
	for i, e := range entries {
		if e.Rank != i+1 {
			return fmt.Errorf("%w: leaderboard position %d has rank %d", ErrInconsistent, i+1, e.Rank)
		}
		if i > 0 && e.Score > entries[i-1].Score {
			return fmt.Errorf("%w: leaderboard rank %d scores above rank %d", ErrInconsistent, e.Rank, e.Rank-1)
		}
	}
	if len(entries) > 0 && entries[0].Score+scoreTolerance < best {
		return fmt.Errorf("%w: leaderboard top %.2f, best screened %.2f", ErrInconsistent, entries[0].Score, best)
	}
	return nil
}
