package refresh

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

const (
	TriggerManual   = "manual"
	TriggerPeriodic = "periodic"

	roomsKey      = "rooms"
	dayKeyPrefix  = "day:"
	DefaultPeriod = 15 * time.Minute
)

// DaySnapshot активные бронирования и каталог аудиторий на дату
type DaySnapshot struct {
	Date         time.Time
	Rooms        []*domain.Room
	Reservations []*domain.Reservation // только pending и approved
	Version      uint64
	LoadedAt     time.Time
}

// State то, что клиенту нужно знать, чтобы решить, когда перечитать данные
type State struct {
	Version       uint64
	LastRefreshAt time.Time
	NextRefreshAt time.Time
	Interval      time.Duration
}

// Coordinator держит короткоживущие снимки для календаря и общей доступности.
// Записи никогда не читают из снимков.
type Coordinator struct {
	roomRepo        RoomRepository
	reservationRepo ReservationRepository
	notifier        Notifier
	metrics         Metrics
	logger          Logger

	cache    *gocache.Cache
	interval time.Duration
	now      func() time.Time

	mu            sync.RWMutex
	version       uint64
	lastRefreshAt time.Time

	cron    *cron.Cron
	entryID cron.EntryID
}

// NewCoordinator создает координатор. notifier и metrics могут быть nil.
func NewCoordinator(
	roomRepo RoomRepository,
	reservationRepo ReservationRepository,
	interval time.Duration,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Coordinator {
	if interval <= 0 {
		interval = DefaultPeriod
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &Coordinator{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		notifier:        notifier,
		metrics:         metrics,
		logger:          logger,
		cache:           gocache.New(interval, 2*interval),
		interval:        interval,
		now:             time.Now,
	}
}

// Rooms возвращает каталог из снимка, загружая его при необходимости
func (c *Coordinator) Rooms(ctx context.Context) ([]*domain.Room, error) {
	if cached, ok := c.cache.Get(roomsKey); ok {
		return cached.([]*domain.Room), nil
	}

	rooms, err := c.roomRepo.ListActive(ctx)
	if err != nil {
		c.logger.Error("Rooms: failed to load catalog: %v", err)
		return nil, fmt.Errorf("%w: Rooms - repository error: %w", ErrLoadFailed, err)
	}

	c.cache.SetDefault(roomsKey, rooms)
	return rooms, nil
}

// Day возвращает снимок на дату, загружая его при необходимости
func (c *Coordinator) Day(ctx context.Context, date time.Time) (*DaySnapshot, error) {
	date = domain.DateOnly(date)
	key := dayKey(date)

	if cached, ok := c.cache.Get(key); ok {
		return cached.(*DaySnapshot), nil
	}

	return c.loadDay(ctx, date)
}

// loadDay читает дату из хранилища. Снимок кладётся в кэш, только если за время
// загрузки версия не изменилась: иначе он мог пропустить запись, уже отмеченную MarkStale.
func (c *Coordinator) loadDay(ctx context.Context, date time.Time) (*DaySnapshot, error) {
	version := c.currentVersion()

	rooms, err := c.Rooms(ctx)
	if err != nil {
		return nil, err
	}

	reservations, err := c.reservationRepo.List(ctx, domain.ReservationFilter{
		Date:       &date,
		ActiveOnly: true,
	})
	if err != nil {
		c.logger.Error("Day: failed to load reservations for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Day - repository error: %w", ErrLoadFailed, err)
	}

	snapshot := &DaySnapshot{
		Date:         date,
		Rooms:        rooms,
		Reservations: reservations,
		Version:      version,
		LoadedAt:     c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version == version {
		c.cache.SetDefault(dayKey(date), snapshot)
	} else {
		c.logger.Info("Day: snapshot for %s changed while loading, not cached", date.Format(domain.DateFormat))
	}

	return snapshot, nil
}

// MarkStale сбрасывает снимок даты, увеличивает версию и оповещает другие экземпляры
func (c *Coordinator) MarkStale(ctx context.Context, date time.Time) {
	c.markStaleLocal(date)

	if err := c.notifier.Publish(ctx, date); err != nil {
		c.logger.Warn("MarkStale: failed to publish stale date %s: %v", date.Format(domain.DateFormat), err)
	}
}

func (c *Coordinator) markStaleLocal(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Delete(dayKey(domain.DateOnly(date)))
	c.version++
}

// Refresh перечитывает каталог и все закэшированные даты
func (c *Coordinator) Refresh(ctx context.Context, trigger string) error {
	dates := c.cachedDates()
	c.cache.Flush()

	if _, err := c.Rooms(ctx); err != nil {
		return err
	}

	for _, date := range dates {
		if _, err := c.loadDay(ctx, date); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.version++
	c.lastRefreshAt = c.now()
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.RefreshCompleted(trigger)
	}

	c.logger.Info("Refresh: %s refresh reloaded catalog and %d dates", trigger, len(dates))
	return nil
}

// State возвращает текущую версию и время последнего обновления
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := State{
		Version:       c.version,
		LastRefreshAt: c.lastRefreshAt,
		Interval:      c.interval,
	}
	if c.cron != nil {
		state.NextRefreshAt = c.cron.Entry(c.entryID).Next
	} else if !c.lastRefreshAt.IsZero() {
		state.NextRefreshAt = c.lastRefreshAt.Add(c.interval)
	}

	return state
}

// Start запускает периодическое обновление и подписку на сигналы других экземпляров.
// Останавливается при отмене ctx.
func (c *Coordinator) Start(ctx context.Context) error {
	scheduler := cron.New()

	entryID, err := scheduler.AddFunc(fmt.Sprintf("@every %s", c.interval), func() {
		refreshCtx, cancel := context.WithTimeout(ctx, c.interval)
		defer cancel()

		if err := c.Refresh(refreshCtx, TriggerPeriodic); err != nil {
			c.logger.Error("Start: periodic refresh failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchedule, err)
	}

	c.mu.Lock()
	c.cron = scheduler
	c.entryID = entryID
	c.mu.Unlock()

	if err := c.Refresh(ctx, TriggerPeriodic); err != nil {
		c.logger.Warn("Start: initial refresh failed: %v", err)
	}

	scheduler.Start()

	go func() {
		if err := c.notifier.Subscribe(ctx, c.markStaleLocal); err != nil && ctx.Err() == nil {
			c.logger.Error("Start: stale subscription stopped: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		<-scheduler.Stop().Done()
		c.logger.Info("Start: refresh scheduler stopped")
	}()

	c.logger.Info("Start: periodic refresh every %s", c.interval)
	return nil
}

func (c *Coordinator) currentVersion() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Coordinator) cachedDates() []time.Time {
	var dates []time.Time
	for key := range c.cache.Items() {
		if !strings.HasPrefix(key, dayKeyPrefix) {
			continue
		}
		date, err := time.Parse(domain.DateFormat, strings.TrimPrefix(key, dayKeyPrefix))
		if err == nil {
			dates = append(dates, date)
		}
	}
	return dates
}

func dayKey(date time.Time) string {
	return dayKeyPrefix + date.Format(domain.DateFormat)
}
