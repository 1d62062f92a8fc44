package discount

import (
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/sajjplace/storefront/internal/storage/kv"
)

// usageKey is the backend key the consumed-code set is stored under.
const usageKey = "discount_used"

// KVUsageLog persists consumed codes as a JSON set behind a kv.Backend.
type KVUsageLog struct {
	backend kv.Backend
}

var _ UsageLog = (*KVUsageLog)(nil)

// NewKVUsageLog returns a usage log backed by the given store.
func NewKVUsageLog(backend kv.Backend) *KVUsageLog {
	return &KVUsageLog{backend: backend}
}

// Used reports whether the code has been consumed by this client.
// Read errors are treated as "not used": a broken log must not lock a
// customer out of checkout.
func (l *KVUsageLog) Used(code string) bool {
	used, err := l.load()
	if err != nil {
		return false
	}
	return used[Normalize(code)]
}

// MarkUsed records the code as consumed.
func (l *KVUsageLog) MarkUsed(code string) error {
	used, err := l.load()
	if err != nil {
		used = make(map[string]bool)
	}
	used[Normalize(code)] = true

	b, err := json.Marshal(used)
	if err != nil {
		return errors.Wrap(err, "encode usage log")
	}
	return l.backend.Set(usageKey, b)
}

func (l *KVUsageLog) load() (map[string]bool, error) {
	b, err := l.backend.Get(usageKey)
	if err != nil {
		return nil, err
	}
	used := make(map[string]bool)
	if len(b) == 0 {
		return used, nil
	}
	if err := json.Unmarshal(b, &used); err != nil {
		return nil, errors.Wrap(err, "decode usage log")
	}
	return used, nil
}
