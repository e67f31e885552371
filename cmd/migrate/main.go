// Migration entrypoint. Run once against a fresh or existing
// database before starting the API server.
package main

import (
	"fmt"

	"nexuscrm/config"
	"nexuscrm/model"

	"github.com/go-gormigrate/gormigrate/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func connectPostgres() *gorm.DB {
	pg := config.GetConfig().Postgres
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		pg.Host, pg.User, pg.Password, pg.DBName, pg.Port, pg.SSLMode, pg.TimeZone)
	db, err := gorm.Open(postgres.Open(dsn))
	if err != nil {
		panic(fmt.Errorf("connect to postgres: %w", err))
	}
	return db
}

func main() {
	db := connectPostgres()

	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			// add contacts and the CRM fields on workspaces
			ID: "2026021712020",
			Migrate: func(tx *gorm.DB) error {
				// it's a good practice to copy the struct inside the function,
				// so side effects are prevented if the original struct changes during the time
				type Contact struct {
					gorm.Model
					OwnerID  uint    `gorm:"index;not null"`
					Name     string  `gorm:"type:varchar(255);not null"`
					Email    *string `gorm:"type:varchar(255)"`
					Phone    *string `gorm:"type:varchar(20)"`
					Company  *string `gorm:"type:varchar(255)"`
					JobTitle *string `gorm:"type:varchar(255)"`
				}
				if err := tx.Migrator().CreateTable(&Contact{}); err != nil {
					return err
				}
				type Workspace struct {
					Stage     string  `gorm:"type:varchar(32);not null;default:discovery"`
					Value     float64 `gorm:"type:decimal(15,2);not null;default:0"`
					ContactID *uint
				}
				for _, col := range []string{"Stage", "Value", "ContactID"} {
					if !tx.Migrator().HasColumn(&Workspace{}, col) {
						if err := tx.Migrator().AddColumn(&Workspace{}, col); err != nil {
							return err
						}
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("contacts")
			},
		},
	})

	m.InitSchema(func(tx *gorm.DB) error {
		err := tx.AutoMigrate(
			&model.User{},
			&model.Workspace{},
			&model.Membership{},
			&model.Item{},
			&model.Note{},
			&model.Contact{},
		)
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		password := string(hash)
		admin := model.User{
			Name:     "admin",
			Email:    "admin@localhost",
			Password: &password,
			Role:     model.RoleAdmin,
		}

		res := tx.Create(&admin)
		if res.Error != nil {
			return res.Error
		}

		return nil
	})

	if err := m.Migrate(); err != nil {
		panic(fmt.Errorf("could not migrate: %w", err))
	}
}
