package config

import (
	"fmt"
	model "peerscore/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func InitDB() (*gorm.DB, error) {
	env := Env()
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		env.DatabaseHost, env.DatabasePort, env.PostgresUser, env.PostgresPassword, env.DatabaseName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "peerscore.",
			SingularTable: false,
		},
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	x := db.Exec(`CREATE SCHEMA IF NOT EXISTS peerscore`)
	if x.Error != nil {
		return nil, x.Error
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.EventParticipant{},
		&model.Criterion{},
		&model.Evaluation{},
		&model.Score{},
		&model.AuditLog{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
