package main

import (
	"log"
	"os"

	"congress-api/config"
	"congress-api/internal/auth"
	"congress-api/internal/doh"
	"congress-api/internal/dswd"
	"congress-api/internal/logs"
	"congress-api/internal/tupad"
	"congress-api/internal/voters"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	dsn := "host=" + cfg.DBHost +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" port=" + cfg.DBPort +
		" sslmode=disable"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	logService := &logs.LogService{DB: db}
	userService := &auth.UserService{DB: db, CFG: &cfg}
	auth.RegisterRoutes(r, userService, logService)

	logs.RegisterRoutes(r, logService)

	tupadService := &tupad.TupadService{DB: db, CFG: &cfg}
	tupad.RegisterRoutes(r, tupadService, logService)

	dohService := &doh.DohService{DB: db, CFG: &cfg}
	doh.RegisterRoutes(r, dohService, logService)

	dswdService := &dswd.DswdService{DB: db, CFG: &cfg}
	dswd.RegisterRoutes(r, dswdService, logService)

	voterService := &voters.VoterService{DB: db}
	voters.RegisterRoutes(r, voterService)

	// Cloud Run expects plain HTTP, on $PORT, bound to 0.0.0.0
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on 0.0.0.0:%s ...", port)
	log.Fatal(r.Run("0.0.0.0:" + port))
}
