// Creates the shop owner's account directly in the database so the
// first admin can log in before any customer registers. Admin rights
// themselves come from the ADMIN_EMAILS allow-list, never from this row.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type User struct {
	ID           string `gorm:"primaryKey"`
	Nombre       string
	Instagram    string
	Correo       string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Cart         string
	CreadoEn     time.Time
}

func main() {
	// Parse command line flags
	dbPath := flag.String("db", "kingpuff.sqlite", "Path to the SQLite database")
	email := flag.String("email", "", "Owner email (must also be in ADMIN_EMAILS)")
	password := flag.String("password", "", "Owner password")
	nombre := flag.String("nombre", "The King Puff", "Owner display name")
	instagram := flag.String("instagram", "@thekingpuff", "Owner Instagram handle")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required")
	}
	correo := strings.ToLower(strings.TrimSpace(*email))

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Check if the account already exists
	var existing User
	if err := db.Where("correo = ?", correo).First(&existing).Error; err == nil {
		fmt.Printf("Account already exists for %s (uid: %s)\n", correo, existing.ID)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Nombre:       *nombre,
		Instagram:    *instagram,
		Correo:       correo,
		PasswordHash: string(hash),
		Cart:         "[]",
		CreadoEn:     time.Now(),
	}

	if err := db.Create(&user).Error; err != nil {
		log.Fatal("Failed to create account:", err)
	}

	fmt.Printf("✓ Owner account created for %s (uid: %s)\n", correo, user.ID)
	fmt.Println("\nRemember to add the email to ADMIN_EMAILS so login grants the admin role:")
	fmt.Printf("ADMIN_EMAILS=%s\n", correo)
}
