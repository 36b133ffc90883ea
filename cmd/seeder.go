package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	custmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/customer"
	paymentmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/payment"
	pmmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/paymentmethod"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample customers, payment methods and payments for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"payment", "payment_method", "customer"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		now := time.Now()

		email := "jane.doe@mail.com"
		var cust custmodel.Customer
		if err := db.Where("email = ?", email).First(&cust).Error; err != nil {
			cust = custmodel.Customer{
				ID:          uuid.NewString(),
				FirstName:   "Jane",
				LastName:    "Doe",
				Email:       email,
				DateOfBirth: "1992-04-15",
				PhoneNumber: "+15550100",
				DateCreated: now,
				DateUpdated: now,
			}
			if err := db.Create(&cust).Error; err != nil {
				log.Fatalf("failed to seed customer: %v", err)
			}
			fmt.Println("Seeded customer:", email)
		} else {
			fmt.Println("customer already exists:", email)
		}

		cardNumber := "4111111111111111"
		var method pmmodel.PaymentMethod
		if err := db.Where("customer_id = ? AND card_number = ?", cust.ID, cardNumber).First(&method).Error; err != nil {
			holder := "Jane Doe"
			cardType := "VISA"
			month, year, cvv := 12, now.Year()+3, "123"
			method = pmmodel.PaymentMethod{
				ID:              uuid.NewString(),
				CustomerID:      cust.ID,
				PaymentName:     "personal visa",
				PaymentType:     pmmodel.TypeCard,
				CardHolderName:  &holder,
				CardNumber:      &cardNumber,
				ExpirationMonth: &month,
				ExpirationYear:  &year,
				CVV:             &cvv,
				CardType:        &cardType,
				DateCreated:     now,
				DateUpdated:     now,
			}
			if err := db.Create(&method).Error; err != nil {
				log.Fatalf("failed to seed payment method: %v", err)
			}
			fmt.Println("Seeded payment method for:", email)
		}

		var count int64
		if err := db.Model(&paymentmodel.Payment{}).Where("customer_id = ?", cust.ID).Count(&count).Error; err != nil {
			log.Fatalf("failed to count payments: %v", err)
		}
		if count == 0 {
			payments := []paymentmodel.Payment{
				{
					ID:              uuid.NewString(),
					CustomerID:      cust.ID,
					PaymentMethodID: method.ID,
					Amount:          320.0,
					Status:          paymentmodel.StatusPending,
					ProcessingTime:  paymentmodel.ProcessingTimeFrom(now, cfg.Payment.ProcessingDays),
					DateCreated:     now,
					DateUpdated:     now,
				},
				{
					ID:              uuid.NewString(),
					CustomerID:      cust.ID,
					PaymentMethodID: method.ID,
					Amount:          42.5,
					Status:          paymentmodel.StatusProcessed,
					ProcessingTime:  paymentmodel.ProcessingTimeFrom(now.AddDate(0, 0, -7), cfg.Payment.ProcessingDays),
					DateCreated:     now.AddDate(0, 0, -7),
					DateUpdated:     now,
				},
			}
			for i := range payments {
				if err := db.Create(&payments[i]).Error; err != nil {
					log.Fatalf("failed to seed payment: %v", err)
				}
			}
			fmt.Printf("Seeded %d payments for: %s\n", len(payments), email)
		}

		fmt.Println("Seeding completed")
	},
}
