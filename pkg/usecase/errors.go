package usecase

import (
	"errors"

	"github.com/secmon-lab/checkin/pkg/domain/model"
)

// IsNotFound checks if err is one of the not-found errors of the domain
func IsNotFound(err error) bool {
	return errors.Is(err, model.ErrProjectNotFound) ||
		errors.Is(err, model.ErrReportNotFound) ||
		errors.Is(err, model.ErrCheckInNotFound)
}
