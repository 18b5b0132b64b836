package winner

import (
	"time"

	"github.com/redstonehub/laurel/internal/domain/model"
)

// earlier reports whether (aTime, aID) precedes (bTime, bID) in the
// createdAt ascending, id ascending chain. A zero time counts as absent.
func earlier(aTime time.Time, aID model.RecordID, bTime time.Time, bID model.RecordID) bool {
	aHas, bHas := !aTime.IsZero(), !bTime.IsZero()
	switch {
	case aHas && bHas && !aTime.Equal(bTime):
		return aTime.Before(bTime)
	case aHas != bHas:
		return aHas
	default:
		return aID.Less(bID)
	}
}
