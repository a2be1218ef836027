package entityrepo

import (
	"encoding/json"
	"fmt"

	"github.com/tarseld/go-entity-repository/entity"
)

// protectedFields are the repository-owned JSON keys a patch may never touch.
var protectedFields = map[string]struct{}{
	"id":         {},
	"created_at": {},
	"updated_at": {},
}

// mergePatch overlays patch onto record field by field and decodes the result
// into a fresh allocation, leaving the input (which may be a shared cached
// copy) untouched. The merge is shallow: a patch value for a field replaces
// that entire top-level field, nested structure and all.
func mergePatch[T entity.Entity](record T, patch map[string]any) (T, error) {
	var zero T

	base, err := json.Marshal(record)
	if err != nil {
		return zero, fmt.Errorf("entityrepo: encode record for merge: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(base, &fields); err != nil {
		return zero, fmt.Errorf("entityrepo: decode record for merge: %w", err)
	}

	for k, v := range patch {
		if _, protected := protectedFields[k]; protected {
			continue
		}
		fields[k] = v
	}

	buf, err := json.Marshal(fields)
	if err != nil {
		return zero, fmt.Errorf("entityrepo: encode merged record: %w", err)
	}

	merged := entity.New[T]()
	if err := json.Unmarshal(buf, merged); err != nil {
		return zero, fmt.Errorf("entityrepo: decode merged record: %w", err)
	}
	return merged, nil
}
