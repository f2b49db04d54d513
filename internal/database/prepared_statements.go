package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour les requêtes chaudes
	stmtGetUserByEmail *gocql.Query
	stmtInsertUser     *gocql.Query
	stmtGetFoodByID    *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements prépare les requêtes fréquentes au démarrage
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		usersSession, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}

		stmtGetUserByEmail = usersSession.Query(`SELECT id, email, first_name, last_name, image, role, phone, password, provider, created_at, updated_at
			FROM users WHERE email = ?`)

		stmtInsertUser = usersSession.Query(`INSERT INTO users (id, email, first_name, last_name, image, role, phone, password, provider, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

		catalogSession, err := GetCatalogSession()
		if err != nil {
			log.Printf("⚠️ Session catalogue indisponible pour les prepared statements: %v", err)
			return
		}

		stmtGetFoodByID = catalogSession.Query(`SELECT id, name, description, image, price, category_id, created_at, updated_at
			FROM food WHERE id = ?`)

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedGetUserByEmail() *gocql.Query {
	return stmtGetUserByEmail
}

func GetPreparedInsertUser() *gocql.Query {
	return stmtInsertUser
}

func GetPreparedGetFoodByID() *gocql.Query {
	return stmtGetFoodByID
}
