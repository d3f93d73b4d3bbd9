package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:400"`
	IsDone      *bool
	StartDate   *time.Time
	EndDate     *time.Time
	TimeItTakes *int // minutes
	IsImportant *bool
	ListID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time

	List List `gorm:"foreignKey:ListID"`
}

// Done resolves the tri-state flag: unset counts as not done.
func (t Task) Done() bool {
	return t.IsDone != nil && *t.IsDone
}

// Important resolves the tri-state flag: unset counts as not important.
func (t Task) Important() bool {
	return t.IsImportant != nil && *t.IsImportant
}

// RemainingMinutes returns the task's estimated minutes when it still
// counts toward the list total, 0 once it is done or has no estimate.
func (t Task) RemainingMinutes() int {
	if t.Done() || t.TimeItTakes == nil {
		return 0
	}
	return *t.TimeItTakes
}
