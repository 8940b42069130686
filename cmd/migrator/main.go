package main

import (
	"flag"
	"fmt"
	"log"

	"gorm.io/gorm"

	"skinshop/domain"
	"skinshop/internal/service/config"
	"skinshop/internal/service/database"
	"skinshop/internal/service/seed"
)

func migrate(seedPath string) (err error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}
	db, err := database.Connect(cfg.DSN(), 2, 1)
	if err != nil {
		return err
	}
	err = db.AutoMigrate(&domain.Account{}, &domain.Skin{}, &domain.LedgerEntry{})
	if err != nil {
		return err
	}
	fmt.Println("Database migrated")

	if seedPath == "" {
		return nil
	}
	skins, err := seed.Load(seedPath)
	if err != nil {
		return err
	}
	return insertMissing(db, skins)
}

// insertMissing adds seed skins whose name is not in the catalog yet, so the
// migrator can be rerun safely.
func insertMissing(db *gorm.DB, skins []domain.Skin) error {
	return db.Transaction(func(tx *gorm.DB) error {
		added := 0
		for i := range skins {
			var count int64
			if err := tx.Model(&domain.Skin{}).Where("name = ?", skins[i].Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Omit("Owner").Create(&skins[i]).Error; err != nil {
				return err
			}
			added++
		}
		fmt.Printf("Seeded %d of %d skins\n", added, len(skins))
		return nil
	})
}

func main() {
	seedPath := flag.String("seed", "", "YAML file with catalog skins to insert")
	flag.Parse()

	err := migrate(*seedPath)
	if err != nil {
		log.Fatal(err)
	}
}
