package main

import (
	"fmt"
	"log"
	"time"

	"github.com/Kamaljaya32/Laundry/internal/config"
	"github.com/Kamaljaya32/Laundry/internal/database"
	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/Kamaljaya32/Laundry/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func main() {
	fmt.Println("🌱 Laundry POS Demo Data Seeder")

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.ServiceType{},
		&models.Order{},
		&models.Job{},
		&models.OrderCounter{},
		&models.Expense{},
		&models.InventoryItem{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount > 0 {
		fmt.Printf("⚠️  Database already has %d users. Clear it first? (y/N): ", userCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		// Clear existing data
		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE laundry CASCADE")
		db.Exec("TRUNCATE TABLE orders CASCADE")
		db.Exec("TRUNCATE TABLE order_counters CASCADE")
		db.Exec("TRUNCATE TABLE expenses CASCADE")
		db.Exec("TRUNCATE TABLE inventory CASCADE")
		db.Exec("TRUNCATE TABLE list_laundry CASCADE")
		db.Exec("TRUNCATE TABLE customers CASCADE")
		db.Exec("TRUNCATE TABLE users CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("📦 Creating demo data...")
	fmt.Println()

	// 1. Create the owner account
	fmt.Println("👤 Creating owner account...")
	hash, err := utils.HashPassword("demo123")
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}
	owner := models.User{
		ID:       uuid.NewString(),
		Username: "demo",
		Email:    "demo@laundry.local",
		Password: hash,
		Name:     "Demo Owner",
		IsActive: true,
	}
	if err := db.Create(&owner).Error; err != nil {
		log.Fatalf("❌ Failed to create owner: %v", err)
	}
	fmt.Printf("   ✓ Login: %s / demo123\n", owner.Email)
	fmt.Println()

	// 2. Create the service catalog
	fmt.Println("🧺 Creating service catalog...")
	serviceNames := []string{"Cuci Kering", "Cuci Setrika", "Setrika", "Bed Cover", "Sepatu"}
	for _, name := range serviceNames {
		svc := models.ServiceType{ID: uuid.NewString(), Name: name, OwnerID: owner.ID}
		if err := db.Create(&svc).Error; err != nil {
			log.Printf("⚠️  Failed to create service %s: %v", name, err)
		} else {
			fmt.Printf("   ✓ Created service: %s\n", name)
		}
	}
	fmt.Printf("✅ Created %d services\n\n", len(serviceNames))

	// 3. Create customers
	fmt.Println("📇 Creating customers...")
	customers := []models.Customer{
		{ID: uuid.NewString(), Name: "Budi Santoso", Phone: "081234567890", OwnerID: owner.ID},
		{ID: uuid.NewString(), Name: "Ani Rahma", Phone: "085298761234", OwnerID: owner.ID},
		{ID: uuid.NewString(), Name: "Citra Dewi", Phone: "081355512345", OwnerID: owner.ID},
	}
	for i := range customers {
		if err := db.Create(&customers[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create customer %s: %v", customers[i].Name, err)
		} else {
			fmt.Printf("   ✓ Created customer: %s (%s)\n", customers[i].Name, customers[i].Phone)
		}
	}
	fmt.Printf("✅ Created %d customers\n\n", len(customers))

	// 4. Create a few orders with their dashboard jobs
	fmt.Println("📋 Creating orders and jobs...")
	now := time.Now()
	tomorrow := now.Add(24 * time.Hour)

	type seedOrder struct {
		customer models.Customer
		items    []models.OrderItem
		payment  models.PaymentMethod
		status   models.JobStatus
		discount decimal.Decimal
	}
	seeds := []seedOrder{
		{
			customer: customers[0],
			items: []models.OrderItem{
				{Service: "Cuci Kering", Weight: decimal.NewFromInt(2), Price: decimal.NewFromInt(10000)},
				{Service: "Setrika", Weight: decimal.NewFromInt(1), Price: decimal.NewFromInt(5000)},
			},
			payment:  models.PaymentUnpaid,
			status:   models.StatusProcessing,
			discount: decimal.NewFromInt(2500),
		},
		{
			customer: customers[1],
			items: []models.OrderItem{
				{Service: "Cuci Setrika", Weight: decimal.NewFromInt(3), Price: decimal.NewFromInt(8000), Note: "Jangan pakai pewangi"},
			},
			payment:  models.PaymentCash,
			status:   models.StatusNotPickedUp,
			discount: decimal.Zero,
		},
		{
			customer: customers[2],
			items: []models.OrderItem{
				{Service: "Bed Cover", Weight: decimal.NewFromInt(1), Price: decimal.NewFromInt(25000)},
			},
			payment:  models.PaymentQris,
			status:   models.StatusProcessing,
			discount: decimal.Zero,
		},
	}

	counter := models.OrderCounter{OwnerID: owner.ID}
	if err := db.Create(&counter).Error; err != nil {
		log.Fatalf("❌ Failed to create order counter: %v", err)
	}

	for _, s := range seeds {
		counter.LastNumber++

		subtotal := decimal.Zero
		summaries := make([]string, len(s.items))
		for i, item := range s.items {
			subtotal = subtotal.Add(item.LineTotal())
			summaries[i] = fmt.Sprintf("%skg %s", item.Weight.String(), item.Service)
		}
		total := subtotal.Sub(s.discount)

		order := models.Order{
			OrderNumber:  counter.LastNumber,
			OwnerID:      owner.ID,
			CustomerID:   s.customer.ID,
			CustomerName: s.customer.Name,
			Phone:        s.customer.Phone,
			InDate:       &now,
			OutDate:      &tomorrow,
			Items:        s.items,
			Subtotal:     subtotal,
			Discount:     s.discount,
			Total:        total,
			Payment:      s.payment,
			Status:       s.status,
		}
		if err := db.Create(&order).Error; err != nil {
			log.Printf("⚠️  Failed to create order for %s: %v", s.customer.Name, err)
			continue
		}

		job := models.Job{
			OrderNumber: order.OrderNumber,
			OwnerID:     owner.ID,
			Name:        s.customer.Name,
			Phone:       s.customer.Phone,
			Items:       summaries,
			Status:      s.status,
			Payment:     s.payment,
			Deadline:    &tomorrow,
			Discount:    s.discount,
		}
		if err := db.Create(&job).Error; err != nil {
			log.Printf("⚠️  Failed to create job #%d: %v", order.OrderNumber, err)
			continue
		}

		db.Model(&models.Customer{}).Where("id = ?", s.customer.ID).
			Update("total_orders", 1)

		fmt.Printf("   ✓ Created order #%d for %s (%s, %s)\n",
			order.OrderNumber, s.customer.Name, total.String(), s.payment)
	}
	if err := db.Save(&counter).Error; err != nil {
		log.Printf("⚠️  Failed to update order counter: %v", err)
	}
	fmt.Printf("✅ Created %d orders\n\n", len(seeds))

	// 5. Create expenses
	fmt.Println("💸 Creating expenses...")
	expenses := []models.Expense{
		{ID: uuid.NewString(), Amount: decimal.NewFromInt(50000), Note: "Detergen 5kg", Date: now, OwnerID: owner.ID},
		{ID: uuid.NewString(), Amount: decimal.NewFromInt(15000), Note: "Plastik kemasan", Date: now, OwnerID: owner.ID},
	}
	for _, e := range expenses {
		if err := db.Create(&e).Error; err != nil {
			log.Printf("⚠️  Failed to create expense %s: %v", e.Note, err)
		} else {
			fmt.Printf("   ✓ Created expense: %s (%s)\n", e.Note, e.Amount.String())
		}
	}
	fmt.Printf("✅ Created %d expenses\n\n", len(expenses))

	// 6. Create inventory items
	fmt.Println("📦 Creating inventory...")
	inventory := []models.InventoryItem{
		{ID: uuid.NewString(), Name: "Detergen", Stock: 12, OwnerID: owner.ID},
		{ID: uuid.NewString(), Name: "Pewangi", Stock: 8, OwnerID: owner.ID},
		{ID: uuid.NewString(), Name: "Plastik Kemasan", Stock: 200, OwnerID: owner.ID},
	}
	for _, item := range inventory {
		if err := db.Create(&item).Error; err != nil {
			log.Printf("⚠️  Failed to create inventory item %s: %v", item.Name, err)
		} else {
			fmt.Printf("   ✓ Created inventory item: %s (stock %d)\n", item.Name, item.Stock)
		}
	}
	fmt.Printf("✅ Created %d inventory items\n\n", len(inventory))

	// Summary
	fmt.Println("🎉 Demo data created successfully!")
	fmt.Println()
	fmt.Println("🌐 Start the server:")
	fmt.Println("   go run ./cmd/api/main.go")
	fmt.Println("   Then log in with demo@laundry.local / demo123")
}
