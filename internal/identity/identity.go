// Package identity maps a context's (baseType, contextTypeName, contextName)
// triple onto canonical on-disk identifiers. It is pure name computation:
// no I/O happens here, and every identity rule of the storage layer lives
// here so the persistence engine never branches on base type for naming.
package identity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

// Clock supplies the current time for log identifiers and archive batch
// names. Production code uses SystemClock; tests inject a fixed clock to
// make generated identifiers deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Resolver computes canonical identifiers for context documents.
type Resolver struct {
	clock Clock
}

// NewResolver creates a Resolver. A nil clock defaults to SystemClock.
func NewResolver(clock Clock) *Resolver {
	if clock == nil {
		clock = SystemClock()
	}
	return &Resolver{clock: clock}
}

// ForWrite resolves the identifier a new write lands on.
//
//   - document types always write to the type's own name; any caller-supplied
//     context name is informational and ignored
//   - collection types require a context name, which is the storage key
//   - log types generate a fresh timestamped identifier on every call, so
//     log writes never overwrite earlier entries
func (r *Resolver) ForWrite(base types.BaseType, typeName, contextName string) (string, error) {
	switch {
	case base.IsDocument():
		return typeName, nil
	case base.IsCollection():
		if contextName == "" {
			return "", types.ErrContextNameRequired
		}
		if err := types.ValidateName(contextName); err != nil {
			return "", err
		}
		return contextName, nil
	case base.IsLog():
		return typeName + "-" + FormatTimestamp(r.clock.Now()), nil
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnknownBaseType, string(base))
	}
}

// ForNames resolves explicit context names for read and clear operations.
// A nil or empty slice means "no name filter" and resolves to nil: the
// caller then selects every stored document for the type.
//
//   - document types collapse any name list to the single type identifier;
//     names never affect which document is addressed
//   - collection types resolve each name to itself
//   - log types treat each name as the exact stored identifier to select;
//     a name filter never generates a new identifier
func (r *Resolver) ForNames(base types.BaseType, typeName string, contextNames []string) ([]string, error) {
	if len(contextNames) == 0 {
		return nil, nil
	}
	switch {
	case base.IsDocument():
		return []string{typeName}, nil
	case base.IsCollection(), base.IsLog():
		resolved := make([]string, 0, len(contextNames))
		for _, name := range contextNames {
			if name == "" {
				return nil, types.ErrContextNameRequired
			}
			if err := types.ValidateName(name); err != nil {
				return nil, err
			}
			resolved = append(resolved, name)
		}
		return resolved, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownBaseType, string(base))
	}
}

// RequireName enforces the collection rule that a context name must be
// present before any I/O is attempted.
func RequireName(base types.BaseType, contextName string) error {
	if base.IsCollection() && contextName == "" {
		return types.ErrContextNameRequired
	}
	return nil
}

// LogPrefix returns the identifier prefix shared by all entries of a log
// type. Reads without a name filter select identifiers with this prefix.
func LogPrefix(typeName string) string { return typeName + "-" }

// NewArchiveBatchID generates the name of one clear call's archive bucket.
// The wall-clock timestamp keeps buckets human-readable and sortable; the
// random suffix keeps concurrent clears from colliding on a clock tick.
func (r *Resolver) NewArchiveBatchID() string {
	return FormatTimestamp(r.clock.Now()) + "-" + uuid.NewString()[:8]
}

// FormatTimestamp renders t as fixed-width, filesystem-safe UTC with
// millisecond resolution (e.g. 2026-08-23T14-05-09-123Z). The rendering is
// zero-padded, so lexicographic order over identifiers equals chronological
// order over their timestamps.
func FormatTimestamp(t time.Time) string {
	utc := t.UTC()
	return fmt.Sprintf("%s-%03dZ", utc.Format("2006-01-02T15-04-05"), utc.Nanosecond()/int(time.Millisecond))
}
