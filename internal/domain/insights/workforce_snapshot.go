package insights

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkforceSnapshot struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date         time.Time `gorm:"column:date;not null;uniqueIndex:idx_snapshot_date_dept,priority:1" json:"date"`
	DepartmentID string    `gorm:"column:department_id;not null;default:'';uniqueIndex:idx_snapshot_date_dept,priority:2" json:"departmentId"`
	Headcount    int       `gorm:"column:headcount" json:"headcount"`
	Exits        int       `gorm:"column:exits" json:"exits"`
	Joins        int       `gorm:"column:joins" json:"joins"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (WorkforceSnapshot) TableName() string { return "workforce_snapshots" }

func (w *WorkforceSnapshot) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
