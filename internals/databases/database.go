package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	feeModel "schoolku_backend/internals/features/finance/fee_structures/model"
	paymentModel "schoolku_backend/internals/features/finance/payments/model"
	attendanceModel "schoolku_backend/internals/features/school/attendance/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
	userModel "schoolku_backend/internals/features/users/auth/model"
)

// ConnectDB membuka koneksi postgres. PreferSimpleProtocol cocok untuk PgBouncer.
func ConnectDB(cfg *configs.Config, log *zap.Logger) (*gorm.DB, error) {
	log.Info("🔌 connecting to PostgreSQL", zap.String("host", cfg.DB.Host), zap.String("db", cfg.DB.Name))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DB.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	TunePool(db, cfg.DB, log)
	log.Info("✅ DB connected")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.DBConfig, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// AutoMigrate membuat / menyesuaikan semua tabel yang dipakai aplikasi.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&userModel.TokenBlacklistModel{},
		&studentModel.StudentModel{},
		&feeModel.FeeStructureModel{},
		&paymentModel.OnlinePaymentModel{},
		&paymentModel.OfflinePaymentModel{},
		&paymentModel.PaymentMonthClaimModel{},
		&paymentModel.GatewayEventModel{},
		&attendanceModel.AttendanceRecordModel{},
	)
}
