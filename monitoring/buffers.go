package monitoring

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/queueing"
)

type bufferRsp struct {
	Buffer string `json:"buffer"`
	Level  int    `json:"level"`
	Cap    int    `json:"cap"`
}

func (m *Monitor) registerQueues(c modeling.Component) {
	owner, ok := c.(queueing.Owner)
	if !ok {
		return
	}

	m.queues = append(m.queues, owner.Queues()...)
}

// listBuffers reports the fill level of the registered queues, fullest
// first. Query parameters sort (level or percent), limit and offset select
// which queues are listed.
func (m *Monitor) listBuffers(w http.ResponseWriter, r *http.Request) {
	sortMethod, limit, offset, err := parseBufferParams(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	selected := m.sortAndSelectQueues(sortMethod, limit, offset)

	rsp := make([]bufferRsp, 0, len(selected))
	for _, q := range selected {
		rsp = append(rsp, bufferRsp{
			Buffer: q.Name(),
			Level:  q.Size(),
			Cap:    q.Capacity(),
		})
	}

	m.writeJSON(w, rsp)
}

func parseBufferParams(r *http.Request) (
	sortMethod string,
	limit, offset int,
	err error,
) {
	sortMethod = r.URL.Query().Get("sort")
	if sortMethod == "" {
		sortMethod = "percent"
	}

	if sortMethod != "level" && sortMethod != "percent" {
		return "", 0, 0, errors.New(
			"invalid sort method " + sortMethod +
				", allowed values are `level` and `percent`")
	}

	limit, err = intParam(r, "limit")
	if err != nil {
		return "", 0, 0, err
	}

	offset, err = intParam(r, "offset")
	if err != nil {
		return "", 0, 0, err
	}

	if limit < 0 || offset < 0 {
		return "", 0, 0, errors.New("limit and offset must not be negative")
	}

	return sortMethod, limit, offset, nil
}

func intParam(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}

	return v, nil
}

func queuePercent(q queueing.Queue) float64 {
	return float64(q.Size()) / float64(q.Capacity())
}

// sortAndSelectQueues orders the queues and cuts the page. A zero limit
// selects everything after the offset.
func (m *Monitor) sortAndSelectQueues(
	sortMethod string,
	limit, offset int,
) []queueing.Queue {
	sorted := make([]queueing.Queue, len(m.queues))
	copy(sorted, m.queues)

	sort.SliceStable(sorted, func(i, j int) bool {
		sizeI, sizeJ := sorted[i].Size(), sorted[j].Size()
		percentI, percentJ := queuePercent(sorted[i]), queuePercent(sorted[j])

		if sortMethod == "level" {
			if sizeI != sizeJ {
				return sizeI > sizeJ
			}

			return percentI > percentJ
		}

		if percentI != percentJ {
			return percentI > percentJ
		}

		return sizeI > sizeJ
	})

	if offset > len(sorted) {
		offset = len(sorted)
	}

	end := len(sorted)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return sorted[offset:end]
}
