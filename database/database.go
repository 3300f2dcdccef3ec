package database

import (
	"log"

	"dochadzka/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// Auto migrate the schema
	err = DB.AutoMigrate(
		&models.Employee{},
		&models.AttendanceLog{},
		&models.Store{},
		&models.OpeningHours{},
		&models.FixHours{},
		&models.Setting{},
	)
	if err != nil {
		return err
	}

	return seedDefaults()
}

func seedDefaults() error {
	var count int64
	DB.Model(&models.Setting{}).Where("key = ?", models.SettingAdminCode).Count(&count)
	if count > 0 {
		return nil
	}

	if err := DB.Create(&models.Setting{
		Key:   models.SettingAdminCode,
		Value: models.DefaultAdminCode,
	}).Error; err != nil {
		return err
	}

	log.Println("Default admin code seeded")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
