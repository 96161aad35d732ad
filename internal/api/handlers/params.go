package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	"github.com/m04kA/SMC-LabReservation/pkg/types"
)

// PathID читает положительный int64 из переменной пути
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

// ParseDate разбирает дату YYYY-MM-DD
func ParseDate(field, value string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be YYYY-MM-DD")
	}
	return date, nil
}

// ParseTime разбирает время HH:MM
func ParseTime(field, value string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(strings.TrimSpace(value))
	if err != nil {
		return "", domain.NewValidationError(field, "must be HH:MM")
	}
	return t, nil
}

// QueryOptional возвращает параметр запроса или nil, если он пуст
func QueryOptional(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil
	}
	return &value
}
