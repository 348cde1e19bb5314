package board

import (
	"sort"

	"github.com/idilsaglam/taskboard/internal/model"
)

// ShortIDs maps each task id to its shortest prefix of at least minLen
// characters that no other task id shares. UUIDv7 ids created close together
// share their leading timestamp digits, so a fixed-length prefix is not enough.
func ShortIDs(tasks []model.Task, minLen int) map[string]string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)

	out := make(map[string]string, len(ids))
	for i, id := range ids {
		n := minLen
		if i > 0 {
			n = max(n, commonPrefix(id, ids[i-1])+1)
		}
		if i+1 < len(ids) {
			n = max(n, commonPrefix(id, ids[i+1])+1)
		}
		if n > len(id) {
			n = len(id)
		}
		out[id] = id[:n]
	}
	return out
}

func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
