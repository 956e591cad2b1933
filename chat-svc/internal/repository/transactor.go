package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"
)

type Transactor interface {
	Transaction(fn func(tx *gorm.DB) error) error
}

type transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &transactor{db: db}
}

func (t *transactor) Transaction(fn func(tx *gorm.DB) error) error {
	return t.db.Transaction(fn)
}

// findOne runs q.First into dest and turns ErrRecordNotFound into found=false.
func findOne(q *gorm.DB, dest any, what string) (bool, error) {
	err := q.First(dest).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	log.Printf("find %s error: %v", what, err)
	return false, err
}

func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return q.Limit(limit).Offset(offset)
}
