package domain

import "time"

type SwipeDirection string

const (
	SwipeLike SwipeDirection = "like"
	SwipePass SwipeDirection = "pass"
)

func (d SwipeDirection) Valid() bool {
	return d == SwipeLike || d == SwipePass
}

// Swipe is immutable. The unique index is what makes a concurrent second swipe on
// the same (swiper, target) pair fail instead of overwrite.
type Swipe struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SwiperID  uint           `gorm:"not null;uniqueIndex:uidx_swipes_swiper_target,priority:1" json:"swiper_id"`
	TargetID  uint           `gorm:"not null;uniqueIndex:uidx_swipes_swiper_target,priority:2;index:idx_swipes_target" json:"target_id"`
	Direction SwipeDirection `gorm:"type:varchar(10);not null" json:"direction"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Swipe) TableName() string { return "bc_swipes" }
