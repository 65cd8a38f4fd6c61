package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"flowerStore/models"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type AdminRepository interface {
	GetAdminByName(ctx context.Context, name string) (models.Admin_db, bool, error)
	EncryptPassword(adminPass string) (hashedPassword string, err error)
	VerifyPassword(hashedPassword string, sentPassword string) bool
	AddAdmin(ctx context.Context, aModel models.Admin_db) (newAdminId int, err error)
	UpdatePassword(ctx context.Context, username string, hashedPassword string) error
}

type AdminRepo struct {
	db *sql.DB
	cb *StoreBreaker
}

func NewAdminRepository(conn *sql.DB, cb *StoreBreaker) (AdminRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	if cb == nil {
		return nil, errors.New("breaker must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &AdminRepo{
		db: conn,
		cb: cb,
	}, nil
}

func (a *AdminRepo) GetAdminByName(ctx context.Context, name string) (aModel models.Admin_db, exists bool, err error) {
	e := a.cb.Do(ctx, func() error {
		err := a.db.QueryRowContext(ctx, "SELECT id, username, password FROM admins WHERE username = $1", name).
			Scan(&aModel.Id, &aModel.Username, &aModel.Password)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err == nil {
			exists = true
		}
		return err
	})
	if e != nil {
		log.Printf("GetAdminByName: %v", e)
		err = storeError(e)
		exists = false
	}
	return
}

func (a *AdminRepo) EncryptPassword(adminPass string) (hashedPassword string, err error) {
	var password []byte
	password, err = bcrypt.GenerateFromPassword([]byte(adminPass), 8)
	if err != nil {
		log.Printf("EncryptPassword: %v", err)
		err = models.ErrServerError
		return
	}
	hashedPassword = string(password)
	return
}

func (a *AdminRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(sentPassword))
	if err != nil {
		log.Printf("VerifyPassword: %v", err)
	}
	return err == nil
}

func (a *AdminRepo) AddAdmin(ctx context.Context, aModel models.Admin_db) (newAdminId int, err error) {
	e := a.cb.Do(ctx, func() error {
		return a.db.QueryRowContext(ctx, "INSERT INTO admins (username, password) VALUES ($1, $2) RETURNING id", aModel.Username, aModel.Password).
			Scan(&newAdminId)
	})
	if e != nil {
		log.Printf("AddAdmin: %v", e)
		var pqErr *pq.Error
		if errors.As(e, &pqErr) && pqErr.Code == "23505" {
			err = models.ErrNotAllowed
			return
		}
		err = storeError(e)
	}
	return
}

func (a *AdminRepo) UpdatePassword(ctx context.Context, username string, hashedPassword string) error {
	e := a.cb.Do(ctx, func() error {
		_, err := a.db.ExecContext(ctx, "UPDATE admins SET password = $1 WHERE username = $2", hashedPassword, username)
		return err
	})
	if e != nil {
		log.Printf("UpdatePassword: %v", e)
		return storeError(e)
	}
	return nil
}
