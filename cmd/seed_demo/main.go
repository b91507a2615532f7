package main

import (
	"fmt"
	"log"
	"time"

	"github.com/motorhaus/garagego/internal/config"
	"github.com/motorhaus/garagego/internal/database"
	"github.com/motorhaus/garagego/internal/models"
	"github.com/motorhaus/garagego/internal/utils"
	"github.com/motorhaus/garagego/internal/workshop"
)

func main() {
	fmt.Println("🌱 Garage Demo Data Seeder")

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

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.OwnedTool{},
		&models.Vehicle{},
		&models.InventoryItem{},
		&models.MasterPart{},
		&models.ComponentType{},
		&models.Order{},
		&models.Job{},
		&models.JobPart{},
		&models.JobTask{},
		&models.JobTool{},
		&models.JobSpec{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")

	// Check if data already exists
	var userCount int64
	db.Model(&models.UserAuth{}).Count(&userCount)
	if userCount > 0 {
		fmt.Printf("⚠️  Database already has %d users. Clear it first? (y/N): ", userCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		fmt.Println("🗑️  Clearing existing data...")
		for _, table := range []string{"job_parts", "job_tasks", "job_tools", "job_specs", "jobs", "inventory", "orders", "component_types", "master_parts", "owned_tools", "vehicles", "user_auths"} {
			db.Exec("TRUNCATE TABLE " + table + " CASCADE")
		}
		fmt.Println("✅ Data cleared")
	}

	fmt.Println("📦 Creating demo data...")

	// 1. Demo user
	hash, err := utils.HashPassword("demo1234")
	if err != nil {
		log.Fatalf("❌ Failed to hash demo password: %v", err)
	}
	user := models.UserAuth{
		Username:   "demo",
		Email:      "demo@example.com",
		Password:   hash,
		Name:       "Demo Mechanic",
		Role:       "user",
		SkillLevel: "intermediate",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("❌ Failed to create demo user: %v", err)
	}
	fmt.Printf("   ✓ Created user: %s (password: demo1234)\n", user.Email)

	// 2. Owned tools
	toolNames := []string{"Torque Wrench", "Floor Jack", "Jack Stands", "3/8 Socket Set", "Breaker Bar"}
	for _, name := range toolNames {
		tool := models.OwnedTool{UserID: user.ID, Name: name, NormalizedName: workshop.NormalizeToolName(name)}
		if err := db.Create(&tool).Error; err != nil {
			log.Printf("⚠️  Failed to create tool %s: %v", name, err)
		}
	}
	fmt.Printf("   ✓ Created %d owned tools\n", len(toolNames))

	// 3. Vehicle
	vehicle := models.Vehicle{
		UserID:                  user.ID,
		Year:                    2008,
		Make:                    "Honda",
		Model:                   "Civic",
		Trim:                    "Si",
		Nickname:                "Daily",
		Odometer:                142000,
		EngineDescription:       "2.0L K20Z3",
		TransmissionDescription: "6MT",
		DriveType:               "FWD",
	}
	if err := db.Create(&vehicle).Error; err != nil {
		log.Fatalf("❌ Failed to create vehicle: %v", err)
	}
	fmt.Printf("   ✓ Created vehicle: %s\n", vehicle.Description())

	// 4. Component types with default lifespans
	intp := func(n int) *int { return &n }
	componentTypes := []models.ComponentType{
		{Name: "brake_pads", Category: "brakes", DefaultLifespanMiles: intp(30000)},
		{Name: "brake_rotors", Category: "brakes", DefaultLifespanMiles: intp(60000)},
		{Name: "engine_oil", Category: "fluids", DefaultLifespanMiles: intp(5000), DefaultLifespanMonths: intp(6)},
		{Name: "tires", Category: "wheels", DefaultLifespanMiles: intp(40000), DefaultLifespanMonths: intp(72)},
		{Name: "battery", Category: "electrical", DefaultLifespanMonths: intp(48)},
	}
	for _, ct := range componentTypes {
		if err := db.Create(&ct).Error; err != nil {
			log.Printf("⚠️  Failed to create component type %s: %v", ct.Name, err)
		}
	}
	fmt.Printf("   ✓ Created %d component types\n", len(componentTypes))

	// 5. An order in transit and its items
	orderDate := time.Now().Add(-72 * time.Hour)
	order := models.Order{
		UserID:    user.ID,
		VehicleID: &vehicle.ID,
		Vendor:    "RockAuto",
		OrderDate: &orderDate,
		Status:    models.OrderStatusShipped,
		Subtotal:  96.40,
		Tax:       7.71,
		Total:     104.11,
	}
	if err := db.Create(&order).Error; err != nil {
		log.Fatalf("❌ Failed to create order: %v", err)
	}

	inTransit := models.InventoryItem{
		UserID:      user.ID,
		VehicleID:   vehicle.ID,
		Name:        "Front Brake Pads",
		Category:    "brake_pads",
		PartNumber:  "45022-SNA-A01",
		Status:      models.StatusOrdered,
		OrderID:     &order.ID,
		PurchasedAt: &orderDate,
	}
	if err := db.Create(&inTransit).Error; err != nil {
		log.Printf("⚠️  Failed to create ordered item: %v", err)
	}

	// 6. Stock, wishlist and an installed part with health data
	install := time.Now().AddDate(-1, -2, 0)
	installMiles := 128000
	items := []models.InventoryItem{
		{UserID: user.ID, VehicleID: vehicle.ID, Name: "Front Brake Rotors (pair)", Category: "brake_rotors", Quantity: 2, Status: models.StatusInStock},
		{UserID: user.ID, VehicleID: vehicle.ID, Name: "Oil Filter", Category: "engine_oil", Quantity: 3, Status: models.StatusInStock},
		{UserID: user.ID, VehicleID: vehicle.ID, Name: "Coilover Kit", Category: "suspension", Status: models.StatusWishlist, Priority: 5},
		{UserID: user.ID, VehicleID: vehicle.ID, Name: "Michelin PS4 Tires", Category: "tires", Quantity: 4, Status: models.StatusInstalled, InstalledAt: &install, InstallMiles: &installMiles},
	}
	for _, item := range items {
		if err := db.Create(&item).Error; err != nil {
			log.Printf("⚠️  Failed to create item %s: %v", item.Name, err)
		}
	}
	fmt.Printf("   ✓ Created %d inventory items + 1 ordered item\n", len(items))

	// 7. A draft job with checklist rows
	job := models.Job{
		UserID:    user.ID,
		VehicleID: vehicle.ID,
		Title:     "Front brake refresh",
		Notes:     "Pads and rotors, inspect calipers while in there",
		Status:    models.JobStatusPlanned,
	}
	if err := db.Create(&job).Error; err != nil {
		log.Fatalf("❌ Failed to create job: %v", err)
	}

	tasks := []models.JobTask{
		{JobID: job.ID, Instruction: "Loosen lug nuts, jack up front end, secure on stands", Phase: models.PhaseTeardown, OrderIndex: 0},
		{JobID: job.ID, Instruction: "Remove caliper and hang from spring", Phase: models.PhaseTeardown, OrderIndex: 1},
		{JobID: job.ID, Instruction: "Remove caliper bracket and rotor", Phase: models.PhaseTeardown, OrderIndex: 2},
		{JobID: job.ID, Instruction: "Install new rotor and pads, torque bracket bolts", Phase: models.PhaseAssembly, OrderIndex: 3},
		{JobID: job.ID, Instruction: "Pump brake pedal, torque lug nuts in star pattern", Phase: models.PhaseAssembly, OrderIndex: 4},
	}
	for _, task := range tasks {
		if err := db.Create(&task).Error; err != nil {
			log.Printf("⚠️  Failed to create task: %v", err)
		}
	}

	tools := []models.JobTool{
		{JobID: job.ID, Name: "Torque Wrench", Required: true, IsAcquired: true},
		{JobID: job.ID, Name: "C-Clamp", Required: true},
		{JobID: job.ID, Name: "Brake Cleaner", Required: false},
	}
	for _, tool := range tools {
		if err := db.Create(&tool).Error; err != nil {
			log.Printf("⚠️  Failed to create job tool: %v", err)
		}
	}

	specs := []models.JobSpec{
		{JobID: job.ID, Item: "Caliper bracket bolts", Value: "80 ft-lbs"},
		{JobID: job.ID, Item: "Lug nuts", Value: "94 ft-lbs", Note: "star pattern"},
	}
	for _, spec := range specs {
		if err := db.Create(&spec).Error; err != nil {
			log.Printf("⚠️  Failed to create job spec: %v", err)
		}
	}
	fmt.Printf("   ✓ Created job %q with %d tasks, %d tools, %d specs\n", job.Title, len(tasks), len(tools), len(specs))

	fmt.Println()
	fmt.Println("🎉 Demo data created successfully!")
	fmt.Println()
	fmt.Println("🌐 Start the server:")
	fmt.Println("   go run ./cmd/api/main.go")
	fmt.Printf("   Then log in as %s / demo1234\n", user.Email)
}
