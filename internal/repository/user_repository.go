package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
	"github.com/pkg/errors"
)

// ErrUserNotFound indica que el usuario no existe
var ErrUserNotFound = errors.New("usuario no encontrado")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(user *models.User) error {
	settings, err := json.Marshal(user.Settings)
	if err != nil {
		return errors.Wrap(err, "error al serializar las preferencias")
	}

	query := `
		INSERT INTO users (id, email, password_hash, name, settings)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err = r.db.QueryRow(query, user.ID, user.Email, user.Password, user.Name, settings).Scan(&user.CreatedAt)
	return errors.Wrap(err, "error al crear el usuario")
}

func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT id, email, password_hash, name, settings, created_at FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(query, email))
}

func (r *UserRepository) GetUserByID(id string) (*models.User, error) {
	query := `SELECT id, email, password_hash, name, settings, created_at FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(query, id))
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var settings []byte

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Name,
		&settings,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "error al obtener el usuario")
	}

	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &user.Settings); err != nil {
			return nil, errors.Wrap(err, "error al leer las preferencias")
		}
	}
	return user, nil
}
