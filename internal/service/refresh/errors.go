package refresh

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

var (
	// ErrLoadFailed возвращается, когда снимок не удалось загрузить из хранилища
	ErrLoadFailed = fmt.Errorf("%w: refresh: failed to load snapshot", domain.ErrUnavailable)

	// ErrSchedule возвращается при некорректном интервале периодического обновления
	ErrSchedule = errors.New("refresh: failed to schedule periodic refresh")
)
