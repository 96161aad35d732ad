package rooms

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

var (
	// ErrCatalogUnavailable возвращается, когда каталог аудиторий не удалось прочитать
	ErrCatalogUnavailable = fmt.Errorf("%w: rooms: catalog unavailable", domain.ErrUnavailable)

	// ErrInvalidSeed возвращается при некорректном файле с начальным каталогом
	ErrInvalidSeed = errors.New("rooms: invalid seed file")
)
