package dal

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rapid-pay-api/internal/config"
	mainmodel "rapid-pay-api/internal/model/main"
	ordermodel "rapid-pay-api/internal/model/order"
)

var MainDB *gorm.DB

// MysqlDSN builds the driver DSN. clientFoundRows makes UPDATE report matched
// rows, so rewriting an unchanged status still counts as one row.
func MysqlDSN(c config.MysqlCfg) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=UTC&clientFoundRows=true",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
}

// InitMainDB opens the MySQL pool. Sessions run in UTC so created_at bounds
// compare the same way they are written.
func InitMainDB() {
	c := config.C.Mysql
	dsn := MysqlDSN(c)

	gcfg := &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
	if c.LogSQL {
		gcfg.Logger = logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Info,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		)
	}

	db, err := gorm.Open(mysql.Open(dsn), gcfg)
	if err != nil {
		log.Fatalf("connect main db failed: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)

	if err := AutoMigrate(db); err != nil {
		log.Fatalf("migrate main db failed: %v", err)
	}
	MainDB = db
}

// AutoMigrate creates the gateway tables. The host_* tables belong to the host
// platform; they are migrated too so a standalone deployment and the tests
// have somewhere to keep orders.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ordermodel.OrderRecord{},
		&ordermodel.AuditLog{},
		&ordermodel.HostOrder{},
		&ordermodel.HostOrderMeta{},
		&ordermodel.HostOrderNote{},
		&ordermodel.HostOrderItem{},
		&mainmodel.SysConfig{},
	)
}
