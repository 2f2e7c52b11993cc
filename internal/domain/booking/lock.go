package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

var ErrLockBusy = errors.New("booking lock busy")

// Locker provides mutual exclusion per key. Release must be called once
// the critical section ends.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// LockKey scopes a booking critical section to one employee and day.
func LockKey(employeeID uint, date time.Time) string {
	return fmt.Sprintf("booking:lock:%d:%s", employeeID, models.DateOf(date).Format(models.DateLayout))
}
