package usecase

import "time"

// SetClock replaces the clock used for processing timestamps.
func SetClock(uc *OutboxUseCase, now func() time.Time) {
	uc.now = now
}
