package usecase

import "time"

// SetClock replaces the clock of a use case built by NewReportUseCase.
func SetClock(uc UseCase, now func() time.Time) {
	uc.(*reportUseCase).now = now
}
