package rooms

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

// Service сервис каталога аудиторий
type Service struct {
	roomRepo RoomRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса аудиторий
func NewService(roomRepo RoomRepository, logger Logger) *Service {
	return &Service{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// ListActiveRooms возвращает активные аудитории, отсортированные по названию
func (s *Service) ListActiveRooms(ctx context.Context) ([]*domain.Room, error) {
	rooms, err := s.roomRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActiveRooms: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActiveRooms - repository error: %v", ErrCatalogUnavailable, err)
	}

	return rooms, nil
}

// seedFile формат rooms.yaml
type seedFile struct {
	Rooms []seedRoom `yaml:"rooms"`
}

type seedRoom struct {
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
	Active   *bool  `yaml:"active"`
}

// SeedFromFile загружает каталог из YAML-файла и создает или обновляет аудитории.
// Аудитории, отсутствующие в файле, не изменяются.
func (s *Service) SeedFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: SeedFromFile - read %s: %v", ErrInvalidSeed, path, err)
	}

	rooms, err := ParseSeed(data)
	if err != nil {
		return 0, err
	}

	for _, room := range rooms {
		if _, err := s.roomRepo.Upsert(ctx, room); err != nil {
			s.logger.Error("SeedFromFile: failed to upsert room %s: %v", room.Name, err)
			return 0, fmt.Errorf("%w: SeedFromFile - upsert %s: %v", ErrCatalogUnavailable, room.Name, err)
		}
	}

	s.logger.Info("SeedFromFile: seeded %d rooms from %s", len(rooms), path)
	return len(rooms), nil
}

// ParseSeed разбирает содержимое rooms.yaml. Поле active по умолчанию true.
func ParseSeed(data []byte) ([]*domain.Room, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	seen := make(map[string]struct{}, len(file.Rooms))
	rooms := make([]*domain.Room, 0, len(file.Rooms))

	for i, r := range file.Rooms {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: room #%d has no name", ErrInvalidSeed, i+1)
		}
		if r.Capacity <= 0 {
			return nil, fmt.Errorf("%w: room %s must have positive capacity", ErrInvalidSeed, r.Name)
		}
		if _, dup := seen[r.Name]; dup {
			return nil, fmt.Errorf("%w: room %s listed twice", ErrInvalidSeed, r.Name)
		}
		seen[r.Name] = struct{}{}

		active := true
		if r.Active != nil {
			active = *r.Active
		}

		rooms = append(rooms, &domain.Room{
			Name:     r.Name,
			Capacity: r.Capacity,
			IsActive: active,
		})
	}

	return rooms, nil
}
