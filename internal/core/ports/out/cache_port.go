package out

import (
	"context"

	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
)

// PeriodKeyPredicate получает структуру ключа целиком,
// чтобы проверки клиники и пересечения границ были обращением к полям
type PeriodKeyPredicate func(key domain.PeriodCacheKey) bool

// CachePort - инжектируемое хранилище периодов
// Инвалидация помечает записи устаревшими, данные перечитываются при следующем чтении
type CachePort interface {
	GetPeriod(ctx context.Context, key domain.PeriodCacheKey) ([]domain.Appointment, bool)
	StorePeriod(ctx context.Context, key domain.PeriodCacheKey, appointments []domain.Appointment)
	InvalidateMatching(ctx context.Context, predicate PeriodKeyPredicate) int
}
