package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// EnsureIndexes adds the lookup indexes AutoMigrate cannot express.
func EnsureIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_predictions_employee_created", `CREATE INDEX IF NOT EXISTS idx_predictions_employee_created ON predictions(employee_id, created_at);`},
		{"idx_manager_assessments_manager_created", `CREATE INDEX IF NOT EXISTS idx_manager_assessments_manager_created ON manager_assessments(manager_id, created_at);`},
		{"idx_skill_embeddings_type_role", `CREATE INDEX IF NOT EXISTS idx_skill_embeddings_type_role ON skill_embeddings(type, meta_role_id);`},
	}
	for _, st := range stmts {
		if err := db.Exec(st.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", st.name, err)
		}
	}
	return nil
}
